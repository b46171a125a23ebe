// Package session persists the client's token between runs and bootstraps
// the client state at process start.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"devconnect/internal/client/actions"
	"devconnect/internal/client/api"
)

// FileTokenStore keeps the token in a single file readable only by the user.
type FileTokenStore struct {
	path string
}

// DefaultTokenPath returns ~/.devconnect/token.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".devconnect", "token"), nil
}

// NewFileTokenStore returns a store backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the backing file.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load returns the stored token, or "" when none is stored.
func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Save writes token, creating the parent directory when needed.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// TokenLoader reads a persisted token.
type TokenLoader interface {
	Load() (string, error)
}

// Bootstrapper performs the once per process start sequence: attach the
// stored token to the API client, then load the current user.
type Bootstrapper struct {
	tokens   TokenLoader
	client   *api.Client
	actions  *actions.Actions
	dispatch actions.Dispatcher

	once sync.Once
	err  error
}

// NewBootstrapper wires the start sequence.
func NewBootstrapper(tokens TokenLoader, client *api.Client, a *actions.Actions, d actions.Dispatcher) *Bootstrapper {
	return &Bootstrapper{tokens: tokens, client: client, actions: a, dispatch: d}
}

// Run executes the sequence on the first call only. Later and concurrent
// calls wait for the first to finish and return its result.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.once.Do(func() {
		token, err := b.tokens.Load()
		if token != "" {
			b.client.SetToken(token)
		}
		// The user is loaded even without a token so the auth slice settles.
		b.err = errors.Join(err, b.actions.LoadUser(ctx, b.dispatch))
	})
	return b.err
}
