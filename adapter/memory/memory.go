// Package memory provides the in-process endb adapter, registered for the
// memory:// scheme. It also backs the facade when construction names no URI
// and no adapter. Contents live in a mutex-guarded map and vanish with the
// process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/endbase/endb/adapter"
)

func init() {
	adapter.Register("memory", func(context.Context, adapter.Config) (adapter.Adapter, error) {
		return New(), nil
	})
}

// Store implements adapter.Adapter over a plain map.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ adapter.Adapter = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = clone(value)
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	_, ok := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	return ok, nil
}

func (s *Store) Clear(_ context.Context, prefix string) error {
	s.mu.Lock()
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) All(_ context.Context, prefix string) ([]adapter.Entry, error) {
	s.mu.RLock()
	entries := make([]adapter.Entry, 0, len(s.data))
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			entries = append(entries, adapter.Entry{Key: k, Value: clone(v)})
		}
	}
	s.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Len reports the number of stored keys, across all namespaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) Close(context.Context) error { return nil }

// clone keeps callers from mutating map-owned slices and vice versa.
func clone(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
