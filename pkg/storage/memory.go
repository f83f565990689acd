package storage

import (
	"context"
	"strings"
	"sync"
)

// MemoryStorage keeps assets in process memory. Display URLs are built from
// baseURL, which should point at a handler serving Get.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string]Object),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put stores a copy of data under key
func (m *MemoryStorage) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = Object{Data: buf, ContentType: contentType}
	m.mu.Unlock()

	return m.URLFor(key), nil
}

// URLFor returns the display URL of key
func (m *MemoryStorage) URLFor(key string) string {
	return m.baseURL + "/" + key
}

// Get returns the object stored under key
func (m *MemoryStorage) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	return &obj, nil
}

var (
	_ Storage = (*MemoryStorage)(nil)
	_ Storage = (*S3Storage)(nil)
)
