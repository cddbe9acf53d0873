package object

import (
	"context"
	"io"
)

// ObjectStore persists uploaded file bytes under opaque storage keys.
type ObjectStore interface {
	// Save writes the reader under the user's namespace and returns the
	// storage key, byte count, and sniffed mime type.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error)
	// Open returns a reader for a previously stored object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
