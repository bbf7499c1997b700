package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements LogRepository using GORM.
// The trail is append-only; entries are never updated or deleted.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append appends a log entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindEarliest finds the oldest entry for an entity with the given action
func (r *GormAuditLogRepository) FindEarliest(ctx context.Context, entityType string, entityID uuid.UUID, action string) (*audit.LogEntry, error) {
	var entry audit.LogEntry
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND action = ?", entityType, entityID, action).
		Order("created_at ASC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByEntity returns the trail for an entity, oldest first
func (r *GormAuditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.LogEntry, error) {
	var entries []audit.LogEntry
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
