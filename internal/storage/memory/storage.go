package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]*model.RegisteredPlayer
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[string]*model.RegisteredPlayer),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[rp.Username]; ok {
		return model.ErrAccountExists
	}
	stored := *rp
	s.accounts[rp.Username] = &stored
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	found := *rp
	return &found, nil
}

func (s *Storage) DeleteRegisteredPlayer(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, username)
	return nil
}

func (s *Storage) ListRegisteredPlayers(ctx context.Context) ([]*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.RegisteredPlayer, 0, len(s.accounts))
	for _, rp := range s.accounts {
		found := *rp
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (s *Storage) Close() error {
	return nil
}
