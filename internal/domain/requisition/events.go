package requisition

import (
	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRequisition = "Requisition"

// Event type constants
const (
	EventTypeRequisitionClosed = "RequisitionClosed"
)

// RequisitionClosedEvent is raised when the auto-closure rule delivers a requisition
type RequisitionClosedEvent struct {
	shared.BaseDomainEvent
	RequisitionID uuid.UUID `json:"requisition_id"`
	Number        string    `json:"number"`
	ProjectID     uuid.UUID `json:"project_id"`
}

// NewRequisitionClosedEvent creates a new RequisitionClosedEvent
func NewRequisitionClosedEvent(r *Requisition) *RequisitionClosedEvent {
	return &RequisitionClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequisitionClosed, AggregateTypeRequisition, r.ID),
		RequisitionID:   r.ID,
		Number:          r.Number,
		ProjectID:       r.ProjectID,
	}
}

// EventType returns the event type name
func (e *RequisitionClosedEvent) EventType() string {
	return EventTypeRequisitionClosed
}
