// Package cache provides the idempotency stores backing event
// deduplication: a Redis implementation for multi-instance deployments and
// an in-memory one for single instances and tests.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/procurement/backend/internal/domain/shared"
)

const janitorInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed event ids in a map with per-entry
// expiry. State is process local: two instances sharing a database must use
// the Redis store instead.
type InMemoryIdempotencyStore struct {
	mu      sync.RWMutex
	expiry  map[string]time.Time
	done    chan struct{}
	stopped sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts its janitor
// goroutine. Call Close to stop it.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiry: make(map[string]time.Time),
		done:   make(chan struct{}),
	}
	go s.janitor()
	return s
}

// MarkProcessed records the event id with the given TTL. Returns true when
// the id was not yet present (or had expired), false on a live duplicate.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.expiry[eventID]; ok && now.Before(deadline) {
		return false, nil
	}
	s.expiry[eventID] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether the event id is present and unexpired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deadline, ok := s.expiry[eventID]
	return ok && time.Now().Before(deadline), nil
}

// Size returns the number of tracked ids, expired entries included until the
// janitor's next sweep
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expiry)
}

// Close stops the janitor. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.stopped.Do(func() {
		close(s.done)
	})
	return nil
}

func (s *InMemoryIdempotencyStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for eventID, deadline := range s.expiry {
		if now.After(deadline) {
			delete(s.expiry, eventID)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
