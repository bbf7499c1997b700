package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"gorm.io/gorm"
)

// GormDeliveryKPIRepository implements DeliveryKPIRepository using GORM
type GormDeliveryKPIRepository struct {
	db *gorm.DB
}

// NewGormDeliveryKPIRepository creates a new GormDeliveryKPIRepository
func NewGormDeliveryKPIRepository(db *gorm.DB) *GormDeliveryKPIRepository {
	return &GormDeliveryKPIRepository{db: db}
}

// Save appends a KPI record
func (r *GormDeliveryKPIRepository) Save(ctx context.Context, record *audit.DeliveryKPIRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ExistsForOrder reports whether a KPI record was already emitted for an order
func (r *GormDeliveryKPIRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&audit.DeliveryKPIRecord{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDeliveryKPIRepository implements DeliveryKPIRepository
var _ audit.DeliveryKPIRepository = (*GormDeliveryKPIRepository)(nil)
