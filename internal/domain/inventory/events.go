package inventory

import (
	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryPosition = "InventoryPosition"

// Event type constants
const (
	EventTypeStockReceived    = "StockReceived"
	EventTypeMovementReversed = "MovementReversed"
)

// StockReceivedEvent is raised when a reception is applied to a position
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	MaterialID uuid.UUID       `json:"material_id"`
	LocationID uuid.UUID       `json:"location_id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Assigned   bool            `json:"assigned"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(materialID, locationID, projectID uuid.UUID, quantity, unitCost decimal.Decimal, assigned bool) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeInventoryPosition, materialID),
		MaterialID:      materialID,
		LocationID:      locationID,
		ProjectID:       projectID,
		Quantity:        quantity,
		UnitCost:        unitCost,
		Assigned:        assigned,
	}
}

// EventType returns the event type name
func (e *StockReceivedEvent) EventType() string {
	return EventTypeStockReceived
}

// MovementReversedEvent is raised when a movement is voided and compensated
type MovementReversedEvent struct {
	shared.BaseDomainEvent
	OriginalMovementID uuid.UUID       `json:"original_movement_id"`
	ReversalMovementID uuid.UUID       `json:"reversal_movement_id"`
	MaterialID         uuid.UUID       `json:"material_id"`
	Quantity           decimal.Decimal `json:"quantity"`
}

// NewMovementReversedEvent creates a new MovementReversedEvent
func NewMovementReversedEvent(original, reversal *InventoryMovement) *MovementReversedEvent {
	return &MovementReversedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeMovementReversed, AggregateTypeInventoryPosition, original.MaterialID),
		OriginalMovementID: original.ID,
		ReversalMovementID: reversal.ID,
		MaterialID:         original.MaterialID,
		Quantity:           reversal.Quantity,
	}
}

// EventType returns the event type name
func (e *MovementReversedEvent) EventType() string {
	return EventTypeMovementReversed
}
