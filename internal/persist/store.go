package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("persist: key not found")

// Store is a flat key/value store for serialized editor state. Values are
// opaque bytes; the project layer above decides the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys with the given prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
