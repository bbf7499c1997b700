package requisition

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for requisition persistence
type Repository interface {
	// FindByID finds a requisition by ID with its lines and sourcing options
	FindByID(ctx context.Context, id uuid.UUID) (*Requisition, error)

	// FindByIDForUpdate finds a requisition by ID holding a row-level
	// exclusive lock for the duration of the enclosing transaction. The
	// auto-closure rule relies on this to serialize concurrent closures.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Requisition, error)

	// Save creates or updates a requisition with its lines and options
	Save(ctx context.Context, r *Requisition) error

	// ListIDsWithOrders returns the identifiers of all requisitions referenced
	// by at least one purchase order, for backfill passes
	ListIDsWithOrders(ctx context.Context) ([]uuid.UUID, error)
}
