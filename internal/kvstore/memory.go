package kvstore

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string][]byte{},
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

func (s *MemoryStore) get(key string) ([]byte, error) {
	v, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	return ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Update holds the store lock for the whole of fn.
func (s *MemoryStore) Update(_ context.Context, keys []string, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := newTxBuffer(keys, func(_ context.Context, key string) ([]byte, error) {
		return s.get(key)
	})
	if err := fn(buf); err != nil {
		return err
	}

	for _, c := range buf.changes() {
		if c.deleted {
			delete(s.records, c.key)
			continue
		}
		s.records[c.key] = c.value
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
