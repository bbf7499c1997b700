package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryPosition is the materialized stock aggregate for one
// (material, location) pair. It is owned by no single event: it is the fold
// of all movements for its key. Rows are created on first reference,
// never pre-created.
type InventoryPosition struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	MaterialID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_position_material_location,priority:1"`
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_position_material_location,priority:2"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AssignedStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastEntryCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'MXN'"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryPosition) TableName() string {
	return "inventory_positions"
}

// TotalStock returns current plus assigned stock
func (p *InventoryPosition) TotalStock() decimal.Decimal {
	return p.CurrentStock.Add(p.AssignedStock)
}
