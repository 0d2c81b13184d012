package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLockStore is an in-process LockStore for tests and single-node
// deployments without Redis.
type MemoryLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewMemoryLockStore creates an in-memory lock store
func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{locks: make(map[string]time.Time)}
}

// Acquire attempts to take the lock
func (s *MemoryLockStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, held := s.locks[key]; held && time.Now().Before(expiry) {
		return false, nil
	}
	s.locks[key] = time.Now().Add(ttl)
	return true, nil
}

// Release drops the lock
func (s *MemoryLockStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}
