package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryMovement, error) {
	var movement inventory.InventoryMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindReversalOf finds the reversal movement referencing the given original
func (r *GormMovementRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*inventory.InventoryMovement, error) {
	var movement inventory.InventoryMovement
	if err := r.db.WithContext(ctx).
		Where("reversal_of_movement_id = ?", originalID).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// Save creates or updates a movement
func (r *GormMovementRepository) Save(ctx context.Context, m *inventory.InventoryMovement) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
