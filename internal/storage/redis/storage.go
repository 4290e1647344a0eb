package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// SETNX makes the username claim atomic across server instances
	created, err := s.client.SetNX(ctx, accountKey(rp.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrAccountExists
	}
	return s.client.SAdd(ctx, accountsIndexKey(), rp.Username).Err()
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) DeleteRegisteredPlayer(ctx context.Context, username string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, accountKey(username))
	pipe.SRem(ctx, accountsIndexKey(), username)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListRegisteredPlayers(ctx context.Context) ([]*model.RegisteredPlayer, error) {
	usernames, err := s.client.SMembers(ctx, accountsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(usernames)

	result := make([]*model.RegisteredPlayer, 0, len(usernames))
	for _, username := range usernames {
		rp, err := s.GetRegisteredPlayer(ctx, username)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				// Stale index entry
				continue
			}
			return nil, err
		}
		result = append(result, rp)
	}
	return result, nil
}
