package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Save creates an assignment record
func (r *GormAssignmentRepository) Save(ctx context.Context, a *inventory.InventoryAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByProject finds all assignments for a project, oldest first
func (r *GormAssignmentRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]inventory.InventoryAssignment, error) {
	var assignments []inventory.InventoryAssignment
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Ensure GormAssignmentRepository implements AssignmentRepository
var _ inventory.AssignmentRepository = (*GormAssignmentRepository)(nil)
