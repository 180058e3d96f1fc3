// Package memory provides a process-local blob storage. Contents are lost when
// the process exits.
package memory

import (
	"context"
	"sync"
)

type Storage struct {
	mu   sync.Mutex
	data []byte
}

// New returns a storage holding a copy of data; nil means an empty slot.
func New(data []byte) *Storage {
	s := &Storage{}
	if data != nil {
		s.data = append([]byte(nil), data...)
	}
	return s
}

func (s *Storage) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *Storage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	return nil
}
