package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
)

// Entity type constants for audit trail scoping
const (
	EntityTypePurchaseOrder = "PurchaseOrder"
	EntityTypeRequisition   = "Requisition"
)

// Action constants. EnteredCollectionProcess marks the start of the delivery
// KPI clock; AutoClosedDelivered records the auto-closure rule firing.
const (
	ActionEnteredCollectionProcess = "ENTERED_COLLECTION_PROCESS"
	ActionAutoClosedDelivered      = "AUTO_CLOSED_DELIVERED"
	ActionStatusChanged            = "STATUS_CHANGED"
	ActionRequisitionClosed        = "REQUISITION_CLOSED"
	ActionSourcingOptionsReplaced  = "SOURCING_OPTIONS_REPLACED"
)

// LogEntry is one append-only line in an entity's audit trail
type LogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	Action     string    `gorm:"type:varchar(50);not null;index"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LogEntry) TableName() string {
	return "audit_log_entries"
}

// NewLogEntry creates a new audit log entry
func NewLogEntry(entityType string, entityID uuid.UUID, action, detail string) (*LogEntry, error) {
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}

	return &LogEntry{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}, nil
}
