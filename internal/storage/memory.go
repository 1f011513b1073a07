package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements RecipientStore in process memory. Used by tests
// and the "memory" storage backend.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]time.Time)}
}

// Add upserts an authorization record for id.
func (s *MemoryStore) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = time.Now()
	return nil
}

// Remove deletes the record for id if present.
func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Exists reports whether id is currently authorized.
func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

// ListAll returns a snapshot of every authorized id, oldest first.
func (s *MemoryStore) ListAll(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	// Map iteration order is random; sort by authorization time so the
	// snapshot order matches the persistent store's.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && s.records[ids[j]].Before(s.records[ids[j-1]]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}
