package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"legalassist-backend/internal/shared/storage/object"
	"legalassist-backend/internal/shared/util"
)

const maxNameAttempts = 5

// Store implements ObjectStore using a flat directory on the local filesystem.
type Store struct {
	baseDir string
	now     func() time.Time
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.baseDir
}

// Save writes the reader to "<baseDir>/<unix millis>-<file name>".
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, fmt.Errorf("sanitize file name: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	f, key, err := s.create(sanitizedName)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(filepath.Join(s.baseDir, key))
		return "", 0, fmt.Errorf("write body: %w", err)
	}
	return key, written, nil
}

// create opens a fresh file, bumping the timestamp when two uploads of the
// same name land in the same millisecond.
func (s *Store) create(name string) (*os.File, string, error) {
	at := s.now()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		key := object.KeyFor(at, name)
		f, err := os.OpenFile(filepath.Join(s.baseDir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return f, key, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("open file: %w", err)
		}
		at = at.Add(time.Millisecond)
	}
	return nil, "", fmt.Errorf("open file: no free name for %q", name)
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a stored object.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return object.ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *Store) resolve(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ObjectStore = (*Store)(nil)
