package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPositionRepository implements PositionRepository using GORM.
// Stock increments are single-statement upserts: concurrent receptions for
// the same (material, location) pair must not lose updates, so the database
// applies the arithmetic, not the application.
type GormPositionRepository struct {
	db *gorm.DB
}

// NewGormPositionRepository creates a new GormPositionRepository
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// FindByKey finds the position for a (material, location) pair
func (r *GormPositionRepository) FindByKey(ctx context.Context, materialID, locationID uuid.UUID) (*inventory.InventoryPosition, error) {
	var position inventory.InventoryPosition
	if err := r.db.WithContext(ctx).
		Where("material_id = ? AND location_id = ?", materialID, locationID).
		First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &position, nil
}

// IncrementCurrentStock atomically increments current_stock, creating the
// position row if absent, and records the reception's cost and currency as
// the latest-cost basis
func (r *GormPositionRepository) IncrementCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, quantity, unitCost decimal.Decimal, currency string) error {
	now := time.Now()
	position := &inventory.InventoryPosition{
		ID:            uuid.New(),
		MaterialID:    materialID,
		LocationID:    locationID,
		CurrentStock:  quantity,
		AssignedStock: decimal.Zero,
		LastEntryCost: unitCost,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "material_id"}, {Name: "location_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"current_stock":   gorm.Expr("inventory_positions.current_stock + ?", quantity),
				"last_entry_cost": unitCost,
				"currency":        currency,
				"updated_at":      now,
			}),
		}).
		Create(position).Error
}

// IncrementAssignedStock atomically increments assigned_stock, creating the
// position row if absent
func (r *GormPositionRepository) IncrementAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, quantity decimal.Decimal) error {
	now := time.Now()
	position := &inventory.InventoryPosition{
		ID:            uuid.New(),
		MaterialID:    materialID,
		LocationID:    locationID,
		CurrentStock:  decimal.Zero,
		AssignedStock: quantity,
		LastEntryCost: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "material_id"}, {Name: "location_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"assigned_stock": gorm.Expr("inventory_positions.assigned_stock + ?", quantity),
				"updated_at":     now,
			}),
		}).
		Create(position).Error
}

// AdjustCurrentStock atomically applies a signed delta to current_stock.
// The guard in the WHERE clause rejects deltas that would drive the balance
// negative; nothing is applied in that case.
func (r *GormPositionRepository) AdjustCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryPosition{}).
		Where("material_id = ? AND location_id = ? AND current_stock + ? >= 0", materialID, locationID, delta).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", delta),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByKey(ctx, materialID, locationID); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// AdjustAssignedStock atomically applies a signed delta to assigned_stock.
// The guard in the WHERE clause rejects deltas that would drive the balance
// negative; nothing is applied in that case.
func (r *GormPositionRepository) AdjustAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryPosition{}).
		Where("material_id = ? AND location_id = ? AND assigned_stock + ? >= 0", materialID, locationID, delta).
		Updates(map[string]interface{}{
			"assigned_stock": gorm.Expr("assigned_stock + ?", delta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByKey(ctx, materialID, locationID); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// Ensure GormPositionRepository implements PositionRepository
var _ inventory.PositionRepository = (*GormPositionRepository)(nil)
