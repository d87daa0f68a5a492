// Package memory provides an in-memory object store used for local
// development and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/katakonsumen/review-service/internal/storage"
)

const defaultBaseURL = "memory://images"

// Storage keeps uploaded objects in a map guarded by a mutex.
type Storage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// New returns an empty in-memory object store.
func New() *Storage {
	return &Storage{
		objects: make(map[string][]byte),
		baseURL: defaultBaseURL,
	}
}

func (s *Storage) Upload(_ context.Context, input storage.UploadInput) (storage.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return storage.UploadResult{}, fmt.Errorf("reading object data: %w", err)
	}

	s.mu.Lock()
	s.objects[input.Key] = data
	s.mu.Unlock()

	return storage.UploadResult{
		Key: input.Key,
		URL: s.baseURL + "/" + input.Key,
	}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *Storage) KeyForURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// Get returns the stored bytes for a key. Test helper.
func (s *Storage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len reports how many objects are stored. Test helper.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
