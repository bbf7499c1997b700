package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PositionRepository defines the interface for inventory position persistence.
// Increments must be atomic upserts keyed on (material_id, location_id):
// concurrent receptions for the same pair are a hot mutation point and a
// read-modify-write pair would lose updates.
type PositionRepository interface {
	// FindByKey finds the position for a (material, location) pair
	FindByKey(ctx context.Context, materialID, locationID uuid.UUID) (*InventoryPosition, error)

	// IncrementCurrentStock atomically increments current_stock, creating the
	// position row if absent, and records the reception's cost and currency as
	// the latest-cost basis
	IncrementCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, quantity, unitCost decimal.Decimal, currency string) error

	// IncrementAssignedStock atomically increments assigned_stock, creating
	// the position row if absent
	IncrementAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, quantity decimal.Decimal) error

	// AdjustCurrentStock atomically applies a signed delta to current_stock.
	// Deltas that would drive the balance negative are rejected with a
	// domain error and nothing is applied.
	AdjustCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error

	// AdjustAssignedStock atomically applies a signed delta to assigned_stock.
	// Deltas that would drive the balance negative are rejected with a
	// domain error and nothing is applied.
	AdjustAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error
}

// MovementRepository defines the interface for inventory movement persistence
type MovementRepository interface {
	// FindByID finds a movement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryMovement, error)

	// FindReversalOf finds the reversal movement referencing the given
	// original, if any
	FindReversalOf(ctx context.Context, originalID uuid.UUID) (*InventoryMovement, error)

	// Save creates or updates a movement
	Save(ctx context.Context, m *InventoryMovement) error
}

// AssignmentRepository defines the interface for inventory assignment persistence
type AssignmentRepository interface {
	// Save creates an assignment record
	Save(ctx context.Context, a *InventoryAssignment) error

	// FindByProject finds all assignments for a project
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]InventoryAssignment, error)
}
