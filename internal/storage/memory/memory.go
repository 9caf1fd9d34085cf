package memory

import (
	"context"
	"maps"
	"sync"
)

// Store is an in-process key-value store. Nothing survives the process.
type Store struct {
	mu    sync.Mutex
	items map[string]string
}

func New() *Store {
	return &Store{items: map[string]string{}}
}

// NewWith seeds the store with a copy of items.
func NewWith(items map[string]string) *Store {
	s := New()
	maps.Copy(s.items, items)
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Close is a no-op so the store fits wherever a closable backend is expected.
func (s *Store) Close() error { return nil }
