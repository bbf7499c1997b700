package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceptionEvent describes goods physically received at a location for a
// target project.
type ReceptionEvent struct {
	MaterialID        uuid.UUID
	LocationID        uuid.UUID
	ProjectID         uuid.UUID
	RequisitionLineID *uuid.UUID
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	Currency          string
}

// InventoryReconciler applies reception and movement events to the
// current-stock and assigned-stock positions. Receptions into the designated
// stock-holding project increment warehouse stock and refresh the
// latest-cost basis; anything else is a project-specific assignment.
type InventoryReconciler struct {
	positions      inventory.PositionRepository
	movements      inventory.MovementRepository
	assignments    inventory.AssignmentRepository
	stockProjectID uuid.UUID
	logger         *zap.Logger
}

// NewInventoryReconciler creates a new InventoryReconciler
func NewInventoryReconciler(
	positions inventory.PositionRepository,
	movements inventory.MovementRepository,
	assignments inventory.AssignmentRepository,
	stockProjectID uuid.UUID,
	logger *zap.Logger,
) *InventoryReconciler {
	return &InventoryReconciler{
		positions:      positions,
		movements:      movements,
		assignments:    assignments,
		stockProjectID: stockProjectID,
		logger:         logger,
	}
}

// ApplyReception applies a reception event: records the movement and
// increments the position via an atomic upsert on (material, location). The
// position row is created on first reference, never pre-created.
func (r *InventoryReconciler) ApplyReception(ctx context.Context, event ReceptionEvent) error {
	if event.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reception quantity must be positive")
	}

	movement, err := inventory.NewReceptionMovement(
		event.MaterialID,
		event.LocationID,
		event.ProjectID,
		event.Quantity,
		event.UnitCost,
	)
	if err != nil {
		return err
	}
	if err := r.RecordMovement(ctx, movement); err != nil {
		return err
	}

	if event.ProjectID == r.stockProjectID {
		return r.positions.IncrementCurrentStock(ctx,
			event.MaterialID, event.LocationID,
			event.Quantity, event.UnitCost, event.Currency,
		)
	}

	if err := r.positions.IncrementAssignedStock(ctx, event.MaterialID, event.LocationID, event.Quantity); err != nil {
		return err
	}

	assignment, err := inventory.NewInventoryAssignment(
		event.MaterialID, event.LocationID, event.ProjectID,
		event.RequisitionLineID, event.Quantity, event.UnitCost,
	)
	if err != nil {
		return err
	}
	return r.assignments.Save(ctx, assignment)
}

// RecordMovement normalizes and persists a movement. Normalization always
// recomputes total_value from quantity and unit value before the write; it
// is idempotent and overwrites whatever was stored.
func (r *InventoryReconciler) RecordMovement(ctx context.Context, m *inventory.InventoryMovement) error {
	m.Normalize()
	return r.movements.Save(ctx, m)
}

// ReverseMovement voids an ACTIVE movement and applies a compensating
// movement with the inverse quantity. The compensating delta hits the same
// balance the original changed: a project-booked reception backs out
// assigned_stock and writes a negative assignment, anything else backs out
// current_stock. A correction that would drive the balance negative is
// rejected and nothing is applied.
func (r *InventoryReconciler) ReverseMovement(ctx context.Context, movementID uuid.UUID, reason string) (*inventory.InventoryMovement, error) {
	original, err := r.movements.FindByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	existing, err := r.movements.FindReversalOf(ctx, movementID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_REVERSED", "Movement already has a reversal")
	}

	reversal, err := inventory.NewReversalMovement(original, reason)
	if err != nil {
		return nil, err
	}

	if original.AffectsAssignedStock(r.stockProjectID) {
		if err := r.positions.AdjustAssignedStock(ctx, original.MaterialID, original.LocationID, reversal.Quantity); err != nil {
			return nil, err
		}
		compensation, err := inventory.NewCompensatingAssignment(
			original.MaterialID, original.LocationID, original.ProjectID,
			original.Quantity, original.UnitValue,
		)
		if err != nil {
			return nil, err
		}
		if err := r.assignments.Save(ctx, compensation); err != nil {
			return nil, err
		}
	} else {
		if err := r.positions.AdjustCurrentStock(ctx, original.MaterialID, original.LocationID, reversal.Quantity); err != nil {
			return nil, err
		}
	}

	if err := original.Void(); err != nil {
		return nil, err
	}
	if err := r.movements.Save(ctx, original); err != nil {
		return nil, err
	}
	if err := r.RecordMovement(ctx, reversal); err != nil {
		return nil, err
	}

	r.logger.Info("movement reversed",
		zap.String("original_id", original.ID.String()),
		zap.String("reversal_id", reversal.ID.String()),
		zap.String("quantity", reversal.Quantity.String()),
	)

	return reversal, nil
}
