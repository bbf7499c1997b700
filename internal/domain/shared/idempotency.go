package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers delivered event ids so redelivered events are
// dropped instead of processed twice.
type IdempotencyStore interface {
	// MarkProcessed records the id with a TTL. True means first delivery,
	// false means a live duplicate.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the id is currently recorded
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls deduplication. After TTL the same event id is
// accepted again, which bounds store growth.
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig enables deduplication with a 24 hour window
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour, Enabled: true}
}
