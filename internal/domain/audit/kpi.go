package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
)

// DeliveryKPIRecord captures the elapsed time between an order entering
// active processing and its delivery. Append-only.
type DeliveryKPIRecord struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EnteredProcessingAt    time.Time `gorm:"not null"`
	DeliveredAt            time.Time `gorm:"not null"`
	ElapsedDays            float64   `gorm:"not null"`
	CollectionMethod       string    `gorm:"type:varchar(50)"`
	DeliveryResponsibility string    `gorm:"type:varchar(50)"`
	CreatedAt              time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryKPIRecord) TableName() string {
	return "delivery_kpi_records"
}

// NewDeliveryKPIRecord creates a KPI record for a delivered order
func NewDeliveryKPIRecord(orderID uuid.UUID, enteredProcessingAt, deliveredAt time.Time, collectionMethod, deliveryResponsibility string) (*DeliveryKPIRecord, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if deliveredAt.Before(enteredProcessingAt) {
		return nil, shared.NewDomainError("INVALID_TIMESTAMPS", "Delivery cannot precede processing entry")
	}

	elapsed := deliveredAt.Sub(enteredProcessingAt).Hours() / 24

	return &DeliveryKPIRecord{
		ID:                     uuid.New(),
		OrderID:                orderID,
		EnteredProcessingAt:    enteredProcessingAt,
		DeliveredAt:            deliveredAt,
		ElapsedDays:            elapsed,
		CollectionMethod:       collectionMethod,
		DeliveryResponsibility: deliveryResponsibility,
		CreatedAt:              time.Now(),
	}, nil
}
