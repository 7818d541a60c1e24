package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound is returned when a storage key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving, retrieving and removing uploaded files.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// KeyFor builds the stored name for an upload: "<unix millis>-<file name>".
func KeyFor(uploadedAt time.Time, sanitizedName string) string {
	return fmt.Sprintf("%d-%s", uploadedAt.UnixMilli(), sanitizedName)
}
