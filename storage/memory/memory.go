// Package memory is the in-process Backend. It is always available and is
// the backend every other intent falls back to.
package memory

import (
	"sync"

	"github.com/willief/AntTP-tutorial/storage"
)

// Store keeps values in a map for the lifetime of the process.
//
// Store carries its own mutex so it is safe to share outside a
// storage.Keyed, for example as the cache tier of a storage.Tiered.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var (
	_ storage.Backend = (*Store)(nil)
	_ storage.Deleter = (*Store)(nil)
)

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (s *Store) Put(key string, value []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	cp := append([]byte(nil), value...)
	s.mu.Lock()
	s.values[key] = cp
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Has(key string) bool {
	s.mu.RLock()
	_, ok := s.values[key]
	s.mu.RUnlock()
	return ok
}

// Delete removes key. Removing a missing key is not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
