package kvstore

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is an opaque string key/value store. Reads that fail for any reason
// report absence; callers treat missing data as a safe default.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps one file per key under a state directory.
type FileStore struct {
	dir string
}

// Open returns a FileStore rooted at dir. An empty dir resolves to
// $XDG_STATE_HOME/phonestore (falling back to ~/.local/state/phonestore).
// The directory is created on first write, not here.
func Open(dir string) (*FileStore, error) {
	if dir == "" {
		base := os.Getenv("XDG_STATE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".local", "state")
		}
		dir = filepath.Join(base, "phonestore")
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the resolved state directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	// Keys are internal constants ("cart", "theme", ...); sanitize anyway so
	// a bad key cannot escape the state dir.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(key string) (string, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0o600)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
