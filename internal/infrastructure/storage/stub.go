package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogapp "github.com/orders/backend/internal/application/catalog"
)

// StubObjectStorage is an in-memory photo storage used when no bucket is
// configured and in tests.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// BaseURL prefixes download URLs; defaults to a placeholder host.
	BaseURL string
}

// NewStubObjectStorage creates an in-memory storage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		objects: make(map[string][]byte),
		BaseURL: "https://storage.invalid",
	}
}

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload stores the blob in memory
func (s *StubObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// Delete removes the blob
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists reports whether the blob is stored
func (s *StubObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// DownloadURL returns a synthetic URL for the blob
func (s *StubObjectStorage) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	return s.BaseURL + "/" + key, nil
}
