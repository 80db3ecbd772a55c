package storage

import (
	"context"
	"sync"
)

// MemoryBlob keeps the document in memory.
type MemoryBlob struct {
	mu    sync.Mutex
	data  []byte
	saved bool
	saves int
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Load(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.saved {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBlob) Save(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.saved = true
	b.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (b *MemoryBlob) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func (b *MemoryBlob) Location() string {
	return "memory"
}

var _ Blob = (*MemoryBlob)(nil)
