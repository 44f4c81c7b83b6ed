package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tokenFileName = "token"

// Store reads and writes the access token file.
type Store struct {
	dir string
}

// New returns a store rooted at the default location:
// <user cache dir>/taskdeck/token.
func New() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return NewAt(filepath.Join(cacheDir, "taskdeck")), nil
}

// NewAt returns a store rooted at dir. Used by tests and by config overrides.
func NewAt(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the stored token. The second return value is false when no
// token has been saved.
func (s *Store) Load() (string, bool, error) {
	slurp, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(slurp))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Save writes the token, creating the directory on first use. The file is
// owner-readable only.
func (s *Store) Save(token string) error {
	if token == "" {
		return errors.New("refusing to save an empty token")
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path() string {
	return filepath.Join(s.dir, tokenFileName)
}
