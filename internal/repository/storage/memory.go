package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryMedium is a process-local KeyValueMedium. It is safe for concurrent use.
type MemoryMedium struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string][]byte)}
}

func (m *MemoryMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return slices.Clone(value), ok, nil
}

func (m *MemoryMedium) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryMedium) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryMedium) Has(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[key]
	return ok, nil
}

// MemoryBlob is a process-local BlobMedium.
type MemoryBlob struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{blobs: make(map[string]string)}
}

func (m *MemoryBlob) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[name]
	return value, ok
}

func (m *MemoryBlob) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[name] = value
	return nil
}

func (m *MemoryBlob) Clear(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
}
