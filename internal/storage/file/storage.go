// Package file stores credentials in a flat text file, one "name:hash" pair per
// line. The file is read once at startup and appended on registration.
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/storage"
	"github.com/mcoot/zonehunt/internal/storage/memory"
)

const separator = ":"

// Storage keeps accounts in memory and mirrors writes to the backing file
type Storage struct {
	mu    sync.Mutex
	path  string
	cache *memory.Storage
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens the credentials file, creating its directory if needed.
// A missing file is treated as empty.
func New(path string) (*Storage, error) {
	s := &Storage{path: path, cache: memory.New()}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) load() error {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	ctx := context.Background()
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, hash, ok := strings.Cut(text, separator)
		if !ok || name == "" || hash == "" {
			return fmt.Errorf("credentials file %s line %d: expected name:hash", s.path, line)
		}
		rp := &model.RegisteredPlayer{Username: strings.ToLower(name), PasswordHash: hash}
		// later lines override earlier ones
		_ = s.cache.DeleteRegisteredPlayer(ctx, rp.Username)
		if err := s.cache.CreateRegisteredPlayer(ctx, rp); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read credentials file: %w", err)
	}
	return nil
}

func (s *Storage) CreateRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	if strings.Contains(rp.Username, separator) || strings.ContainsAny(rp.Username, "\r\n") {
		return fmt.Errorf("username %q cannot be stored in a credentials file", rp.Username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.CreateRegisteredPlayer(ctx, rp); err != nil {
		return err
	}
	if err := s.append(rp.Username + separator + rp.PasswordHash + "\n"); err != nil {
		_ = s.cache.DeleteRegisteredPlayer(ctx, rp.Username)
		return err
	}
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	return s.cache.GetRegisteredPlayer(ctx, username)
}

// DeleteRegisteredPlayer removes the account and rewrites the file without it
func (s *Storage) DeleteRegisteredPlayer(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.DeleteRegisteredPlayer(ctx, username); err != nil {
		return err
	}
	accounts, err := s.cache.ListRegisteredPlayers(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, rp := range accounts {
		b.WriteString(rp.Username + separator + rp.PasswordHash + "\n")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *Storage) ListRegisteredPlayers(ctx context.Context) ([]*model.RegisteredPlayer, error) {
	return s.cache.ListRegisteredPlayers(ctx)
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) append(line string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create credentials directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open credentials file: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append credentials file: %w", err)
	}
	return f.Close()
}
