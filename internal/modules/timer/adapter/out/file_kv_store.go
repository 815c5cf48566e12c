package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	timerout "tasktimer/internal/modules/timer/port/out"
	apperrors "tasktimer/internal/platform/errors"
	"tasktimer/internal/platform/slug"
)

// FileKeyValueStore keeps each key in its own JSON file under dir.
type FileKeyValueStore struct {
	dir string
}

func NewFileKeyValueStore(dir string) timerout.KeyValueStore {
	return &FileKeyValueStore{dir: dir}
}

func (s *FileKeyValueStore) path(key string) string {
	return filepath.Join(s.dir, slug.Make(key)+".json")
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, nil
}

// Set writes to a temp file in the same directory and renames it over the
// previous value.
func (s *FileKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
