package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// validKey limits keys to names that are safe as file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileMedium stores each key as <dir>/<key>.json.
// Writes go to a temp file in the same directory and are renamed into place,
// so a crash mid-write leaves the previous value intact.
type FileMedium struct {
	dir string
}

// NewFileMedium returns a FileMedium rooted at dir, creating it if needed.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewFileMedium: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) Load(_ context.Context, key string) ([]byte, error) {
	path, err := m.path(key)
	if err != nil {
		return nil, fmt.Errorf("repo.FileMedium.Load: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("repo.FileMedium.Load: %w", err)
	}
	return b, nil
}

func (m *FileMedium) Save(_ context.Context, key string, value []byte) error {
	path, err := m.path(key)
	if err != nil {
		return fmt.Errorf("repo.FileMedium.Save: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("repo.FileMedium.Save: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileMedium.Save: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileMedium.Save: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.FileMedium.Save: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("repo.FileMedium.Save: rename: %w", err)
	}
	return nil
}

func (m *FileMedium) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(m.dir, key+".json"), nil
}
