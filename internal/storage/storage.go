package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the blob has never been written.
var ErrNotFound = errors.New("blob not found")

// Blob holds a single document that is always read and written as a whole.
type Blob interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// Location describes where the blob lives, for logs.
	Location() string
}
