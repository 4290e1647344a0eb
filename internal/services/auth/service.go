// Package auth checks display names against the optional credential store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/zonehunt/internal/dependencies/clock"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrAccountRequired    = errors.New("a registered account is required to join")
	ErrInvalidPassword    = errors.New("password must not be empty")
)

// Service handles account registration and credential checks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// RequireAccount rejects joins under names that are not registered
	RequireAccount bool
	// BcryptCost is the hashing cost for new passwords
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		RequireAccount: false,
		BcryptCost:     bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// Register creates an account for username
func (s *Service) Register(ctx context.Context, username, password string) (*model.RegisteredPlayer, error) {
	key, err := normalise(username)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rp := &model.RegisteredPlayer{
		Username:     key,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateRegisteredPlayer(ctx, rp); err != nil {
		if errors.Is(err, model.ErrAccountExists) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("store account: %w", err)
	}

	s.logger.Info("account registered", slog.String("username", key))
	return rp, nil
}

// Verify checks a username and password pair
func (s *Service) Verify(ctx context.Context, username, password string) error {
	key, err := normalise(username)
	if err != nil {
		return ErrInvalidCredentials
	}

	rp, err := s.storage.GetRegisteredPlayer(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rp.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Has reports whether username is registered
func (s *Service) Has(ctx context.Context, username string) (bool, error) {
	key, err := normalise(username)
	if err != nil {
		return false, nil
	}
	_, err = s.storage.GetRegisteredPlayer(ctx, key)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Authorize decides whether a join under username may proceed. Registered
// names need their password; unregistered names pass unless accounts are required.
func (s *Service) Authorize(ctx context.Context, username, password string) error {
	registered, err := s.Has(ctx, username)
	if err != nil {
		return err
	}
	if !registered {
		if s.cfg.RequireAccount {
			return ErrAccountRequired
		}
		return nil
	}

	if err := s.Verify(ctx, username, password); err != nil {
		s.logger.Info("join rejected", slog.String("username", username), slog.Any("error", err))
		return err
	}
	return nil
}

// normalise applies the display name rules and lower-cases the result
func normalise(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > model.MaxDisplayNameLength {
		return "", model.ErrInvalidName
	}
	return strings.ToLower(username), nil
}
