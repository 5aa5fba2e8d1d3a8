package repo

import (
	"context"
	"sync"
)

// InMemoryStore is a map-backed Store used by tests and the default server.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailBatch, when set, makes the next Batch return it without writing.
	FailBatch error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: map[string][]byte{}}
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *InMemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.data, k)
	}
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Batch(_ context.Context, writes ...Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailBatch != nil {
		err := s.FailBatch
		s.FailBatch = nil
		return err
	}
	for _, w := range writes {
		if w.Value == nil {
			delete(s.data, w.Key)
			continue
		}
		s.data[w.Key] = append([]byte(nil), w.Value...)
	}
	return nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	s.data = map[string][]byte{}
	s.mu.Unlock()
}
