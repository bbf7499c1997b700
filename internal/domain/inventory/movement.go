package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementState represents the lifecycle state of an inventory movement
type MovementState string

const (
	MovementStateActive MovementState = "ACTIVE"
	MovementStateVoided MovementState = "VOIDED"
)

// MovementKind represents the kind of stock-affecting event
type MovementKind string

const (
	MovementKindReception   MovementKind = "RECEPTION"
	MovementKindTransfer    MovementKind = "TRANSFER"
	MovementKindConsumption MovementKind = "CONSUMPTION"
	MovementKindReversal    MovementKind = "REVERSAL"
)

// IsValid checks if the kind is a valid MovementKind
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementKindReception, MovementKindTransfer, MovementKindConsumption, MovementKindReversal:
		return true
	}
	return false
}

// InventoryMovement records one stock-affecting event. Movements are voided,
// never deleted; a reversal creates a compensating ACTIVE movement referencing
// the original.
type InventoryMovement struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key"`
	MaterialID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID            uuid.UUID       `gorm:"type:uuid;index"`
	Kind                 MovementKind    `gorm:"type:varchar(20);not null"`
	Quantity             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitValue            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalValue           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	State                MovementState   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ReversalOfMovementID *uuid.UUID      `gorm:"type:uuid;index"`
	Reason               string          `gorm:"type:varchar(500)"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// NewInventoryMovement creates a new ACTIVE movement. The total value is
// normalized on construction.
func NewInventoryMovement(materialID, locationID uuid.UUID, kind MovementKind, quantity, unitValue decimal.Decimal) (*InventoryMovement, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND", "Movement kind is not valid")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}

	now := time.Now()
	m := &InventoryMovement{
		ID:         uuid.New(),
		MaterialID: materialID,
		LocationID: locationID,
		Kind:       kind,
		Quantity:   quantity,
		UnitValue:  unitValue,
		State:      MovementStateActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.Normalize()

	return m, nil
}

// NewReceptionMovement creates a RECEPTION movement booked against the given
// project. A zero project ID means the movement lands in unassigned warehouse
// stock; the project is recorded so a later reversal adjusts the same balance
// the reception changed.
func NewReceptionMovement(materialID, locationID, projectID uuid.UUID, quantity, unitValue decimal.Decimal) (*InventoryMovement, error) {
	m, err := NewInventoryMovement(materialID, locationID, MovementKindReception, quantity, unitValue)
	if err != nil {
		return nil, err
	}
	m.ProjectID = projectID
	return m, nil
}

// AffectsAssignedStock reports whether the movement was booked to a project
// assignment rather than general warehouse stock.
func (m *InventoryMovement) AffectsAssignedStock(stockProjectID uuid.UUID) bool {
	return m.ProjectID != uuid.Nil && m.ProjectID != stockProjectID
}

// Normalize recomputes total_value as quantity * unit_value. It is applied
// before every persist and is idempotent; any previously stored total is
// overwritten.
func (m *InventoryMovement) Normalize() {
	m.TotalValue = m.Quantity.Mul(m.UnitValue)
}

// IsActive returns true if the movement still contributes to balances
func (m *InventoryMovement) IsActive() bool {
	return m.State == MovementStateActive
}

// Void marks the movement as voided. Balances are corrected by the
// compensating movement, never by editing this one.
func (m *InventoryMovement) Void() error {
	if m.State == MovementStateVoided {
		return shared.NewDomainError("ALREADY_VOIDED", "Movement is already voided")
	}
	m.State = MovementStateVoided
	m.UpdatedAt = time.Now()
	return nil
}

// NewReversalMovement builds the compensating ACTIVE movement for an original
func NewReversalMovement(original *InventoryMovement, reason string) (*InventoryMovement, error) {
	if original == nil {
		return nil, shared.ErrNotFound
	}
	if original.Kind == MovementKindReversal {
		return nil, shared.NewDomainError("INVALID_REVERSAL", "Cannot reverse a reversal movement")
	}
	if !original.IsActive() {
		return nil, shared.NewDomainError("ALREADY_VOIDED", "Movement is already voided")
	}

	now := time.Now()
	originalID := original.ID
	m := &InventoryMovement{
		ID:                   uuid.New(),
		MaterialID:           original.MaterialID,
		LocationID:           original.LocationID,
		ProjectID:            original.ProjectID,
		Kind:                 MovementKindReversal,
		Quantity:             original.Quantity.Neg(),
		UnitValue:            original.UnitValue,
		State:                MovementStateActive,
		ReversalOfMovementID: &originalID,
		Reason:               reason,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	m.Normalize()

	return m, nil
}
