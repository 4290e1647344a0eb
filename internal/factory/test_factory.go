package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/zonehunt/internal/dependencies/mocks"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/auth"
	"github.com/mcoot/zonehunt/internal/storage/memory"
	"github.com/mcoot/zonehunt/internal/testutil"
)

// TestDirectorKey is the director secret used by NewTestApp
const TestDirectorKey = "test-director-key"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The geofence ticker is effectively disabled; tests drive ticks explicitly.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	engineCfg := engine.DefaultConfig()
	engineCfg.TickInterval = time.Hour
	engineCfg.Session.InitialZone = model.Zone{Latitude: 50.0, Longitude: 25.0, Radius: 100}

	app := newWithDependencies(store, mockClock, mockRandom, Config{
		AuthConfig:   auth.Config{BcryptCost: bcrypt.MinCost},
		EngineConfig: engineCfg,
		DirectorKey:  TestDirectorKey,
	}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
