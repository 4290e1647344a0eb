package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/zonehunt/internal/dependencies/clock"
	"github.com/mcoot/zonehunt/internal/dependencies/random"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/realtime"
	"github.com/mcoot/zonehunt/internal/services/auth"
	"github.com/mcoot/zonehunt/internal/storage"
	filestorage "github.com/mcoot/zonehunt/internal/storage/file"
	"github.com/mcoot/zonehunt/internal/storage/memory"
	redisstorage "github.com/mcoot/zonehunt/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService *auth.Service
	Hub         *realtime.Hub
	Engine      *engine.Engine
	Realtime    *realtime.Handler

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// EngineConfig holds the tick and session settings (optional)
	// If zero value, defaults to engine.DefaultConfig()
	EngineConfig engine.Config
	// DirectorKey is the shared secret for director capability; empty allows anyone
	DirectorKey string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the credential backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// CredentialsFile is the flat file path (required if StorageType is "file")
	CredentialsFile string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	if cfg.AuthConfig == (auth.Config{}) {
		cfg.AuthConfig = auth.DefaultConfig()
	}
	if cfg.EngineConfig == (engine.Config{}) {
		cfg.EngineConfig = engine.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		if cfg.CredentialsFile == "" {
			return nil, errors.New("CredentialsFile required when StorageType is file")
		}
		store, err := filestorage.New(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return store, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis storage: %w", err)
		}
		return store, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, cfg.AuthConfig, logger)
	hub := realtime.NewHub(logger)
	eng := engine.New(cfg.EngineConfig, clk, rnd, hub, logger)
	handler := realtime.NewHandler(hub, eng, authService, cfg.DirectorKey, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		AuthService: authService,
		Hub:         hub,
		Engine:      eng,
		Realtime:    handler,
		logger:      logger,
	}
}

// Start launches the hub and the engine loop. They stop when ctx is cancelled
// or Stop is called.
func (a *App) Start(ctx context.Context) {
	go a.Hub.Run()
	go a.Engine.Run(ctx)
}

// Stop halts the engine, disconnects every client and releases storage
func (a *App) Stop() error {
	a.Engine.Stop()
	<-a.Engine.Done()
	a.Hub.Close()
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	a.logger.Info("application stopped")
	return nil
}
