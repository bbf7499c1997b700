package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryAssignment links received goods to the project they were bought
// for, as opposed to generic warehouse stock.
type InventoryAssignment struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	MaterialID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequisitionLineID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitValue         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryAssignment) TableName() string {
	return "inventory_assignments"
}

// NewInventoryAssignment creates a project-specific stock assignment record
func NewInventoryAssignment(materialID, locationID, projectID uuid.UUID, requisitionLineID *uuid.UUID, quantity, unitValue decimal.Decimal) (*InventoryAssignment, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Assignment quantity must be positive")
	}

	return &InventoryAssignment{
		ID:                uuid.New(),
		MaterialID:        materialID,
		LocationID:        locationID,
		ProjectID:         projectID,
		RequisitionLineID: requisitionLineID,
		Quantity:          quantity,
		UnitValue:         unitValue,
		CreatedAt:         time.Now(),
	}, nil
}

// NewCompensatingAssignment creates the negative assignment record that backs
// out a reversed project reception. The net assigned quantity for the project
// stays consistent with the position's assigned_stock balance.
func NewCompensatingAssignment(materialID, locationID, projectID uuid.UUID, quantity, unitValue decimal.Decimal) (*InventoryAssignment, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Compensating quantity must be positive")
	}

	return &InventoryAssignment{
		ID:         uuid.New(),
		MaterialID: materialID,
		LocationID: locationID,
		ProjectID:  projectID,
		Quantity:   quantity.Neg(),
		UnitValue:  unitValue,
		CreatedAt:  time.Now(),
	}, nil
}
