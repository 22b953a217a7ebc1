package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore is the narrow contract the rest of the app has with file
// storage. Backends: local disk and Backblaze B2.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

// NewObjectKey generates a unique blob name, keeping the original
// extension so downloads get a sensible filename.
func NewObjectKey(originalName string) string {
	return uuid.NewString() + filepath.Ext(originalName)
}
