// ABOUTME: File-backed session storage for the admin CLI
// ABOUTME: JSON file with 0600 permissions under the user data directory

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage persists the session as a JSON file. Used by the CLI,
// where the session must survive between invocations.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at path. The parent
// directory is created on first save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultSessionPath returns the session file location:
// $XDG_DATA_HOME/blogfront/session.json, falling back to
// ~/.local/share/blogfront/session.json.
func DefaultSessionPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "session.json" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "blogfront", "session.json")
}

// Load reads the stored session. A missing file is an empty session,
// not an error.
func (f *FileStorage) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parsing session file: %w", err)
	}
	return sess, nil
}

// Save writes the session with owner-only permissions.
func (f *FileStorage) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Removing an absent file is fine.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
