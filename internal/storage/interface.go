package storage

import (
	"context"

	"github.com/mcoot/zonehunt/internal/model"
)

// Storage persists registered player credentials. Usernames are stored
// lower-cased; callers normalise before calling.
type Storage interface {
	// CreateRegisteredPlayer stores a new account, returning model.ErrAccountExists
	// if the username is taken
	CreateRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	// GetRegisteredPlayer returns model.ErrPlayerNotFound for unknown usernames
	GetRegisteredPlayer(ctx context.Context, username string) (*model.RegisteredPlayer, error)
	DeleteRegisteredPlayer(ctx context.Context, username string) error
	ListRegisteredPlayers(ctx context.Context) ([]*model.RegisteredPlayer, error)

	Close() error
}
