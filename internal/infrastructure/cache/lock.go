package cache

import (
	"context"
	"time"
)

// LockStore provides best-effort mutual exclusion for processing runs. A lock
// expires after its TTL even if never released, so a crashed run cannot wedge
// a recording forever.
type LockStore interface {
	// Acquire attempts to take the lock; returns false if it is already held
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the lock if held
	Release(ctx context.Context, key string) error
}
