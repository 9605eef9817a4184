// Package memory is an in-process storage driver. Nothing survives Close.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cadastro/internal/common"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, common.ErrorClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrorClosed
	}
	s.data[key] = clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrorClosed
	}
	delete(s.data, key)
	return nil
}

func (s *Store) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, common.ErrorClosed
	}
	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		out[k] = clone(v)
	}
	return out, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrorClosed
	}
	clear(s.data)
	return nil
}

// Update runs fn under the write lock.
func (s *Store) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrorClosed
	}
	var cur []byte
	if v, ok := s.data[key]; ok {
		cur = clone(v)
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	s.data[key] = clone(next)
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

// clone returns a non-nil copy so callers never share backing arrays with
// the map and a stored empty value reads back as present.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
