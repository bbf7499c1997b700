package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/procurement/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequisitionRepository implements requisition.Repository using GORM
type GormRequisitionRepository struct {
	db *gorm.DB
}

// NewGormRequisitionRepository creates a new GormRequisitionRepository
func NewGormRequisitionRepository(db *gorm.DB) *GormRequisitionRepository {
	return &GormRequisitionRepository{db: db}
}

// FindByID finds a requisition by ID with its lines and sourcing options
func (r *GormRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	var req requisition.Requisition
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("SourcingOptions").
		First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindByIDForUpdate finds a requisition by ID holding a row-level exclusive
// lock until the enclosing transaction ends. The lock covers the requisition
// row only; lines and options are loaded without locks. A serialization
// failure or lock timeout while acquiring the lock comes back retryable.
func (r *GormRequisitionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	var req requisition.Requisition
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, translateError(err)
	}

	if err := r.db.WithContext(ctx).
		Where("requisition_id = ?", id).
		Find(&req.Lines).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("requisition_id = ?", id).
		Find(&req.SourcingOptions).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Save creates or updates a requisition with its lines and sourcing options
func (r *GormRequisitionRepository) Save(ctx context.Context, req *requisition.Requisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines", "SourcingOptions").Save(req).Error; err != nil {
			return err
		}

		for i := range req.Lines {
			req.Lines[i].RequisitionID = req.ID
			if err := tx.Save(&req.Lines[i]).Error; err != nil {
				return err
			}
		}
		// Sourcing options can be removed by a replace, so drop rows no
		// longer present before saving the survivors.
		currentOptionIDs := make([]uuid.UUID, len(req.SourcingOptions))
		for i, option := range req.SourcingOptions {
			currentOptionIDs[i] = option.ID
		}
		if len(currentOptionIDs) > 0 {
			if err := tx.Where("requisition_id = ? AND id NOT IN ?", req.ID, currentOptionIDs).
				Delete(&requisition.SourcingOption{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("requisition_id = ?", req.ID).
				Delete(&requisition.SourcingOption{}).Error; err != nil {
				return err
			}
		}

		for i := range req.SourcingOptions {
			req.SourcingOptions[i].RequisitionID = req.ID
			if err := tx.Save(&req.SourcingOptions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListIDsWithOrders returns the identifiers of all requisitions referenced by
// at least one purchase order
func (r *GormRequisitionRepository) ListIDsWithOrders(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Table("purchase_orders").
		Distinct("requisition_id").
		Where("requisition_id IS NOT NULL").
		Pluck("requisition_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Ensure GormRequisitionRepository implements requisition.Repository
var _ requisition.Repository = (*GormRequisitionRepository)(nil)
