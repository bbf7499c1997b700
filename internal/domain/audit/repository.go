package audit

import (
	"context"

	"github.com/google/uuid"
)

// LogRepository defines the interface for the append-only audit trail
type LogRepository interface {
	// Append appends a log entry
	Append(ctx context.Context, entry *LogEntry) error

	// FindEarliest finds the oldest entry for an entity with the given action.
	// Returns shared.ErrNotFound when no such entry exists.
	FindEarliest(ctx context.Context, entityType string, entityID uuid.UUID, action string) (*LogEntry, error)

	// FindByEntity returns the trail for an entity, oldest first
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]LogEntry, error)
}

// DeliveryKPIRepository defines the interface for the KPI sink
type DeliveryKPIRepository interface {
	// Save appends a KPI record
	Save(ctx context.Context, record *DeliveryKPIRecord) error

	// ExistsForOrder reports whether a KPI record was already emitted for an order
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}
