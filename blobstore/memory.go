package blobstore

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// Compile-time check to ensure MemoryStore satisfies the Store interface.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Open opens a blob for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy to prevent external mutation.
	copied := make([]byte, len(data))
	copy(copied, data)

	return io.NopCloser(bytes.NewReader(copied)), nil
}

// Create creates a blob; the content is published on Close.
func (m *MemoryStore) Create(_ context.Context, name string) (Writer, error) {
	return &memoryBlob{store: m, name: name}, nil
}

// Delete removes a blob.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns all blobs matching the prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

type memoryBlob struct {
	store   *MemoryStore
	name    string
	buf     bytes.Buffer
	aborted bool
}

func (b *memoryBlob) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *memoryBlob) Close() error {
	if b.aborted {
		return nil
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	data := make([]byte, b.buf.Len())
	copy(data, b.buf.Bytes())
	b.store.blobs[b.name] = data
	return nil
}

func (b *memoryBlob) Abort() error {
	b.aborted = true
	b.buf.Reset()
	return nil
}
