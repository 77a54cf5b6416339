// Package memory provides a process-local slot store.
package memory

import (
	"context"
	"sync"

	"github.com/rpggio/projectboard/internal/repository"
)

var _ repository.SlotStore = (*Store)(nil)

// Store keeps slot values in a map guarded by a mutex.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrInvalidInput
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}
