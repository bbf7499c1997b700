package requisition

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a requisition
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusSourcing  Status = "SOURCING"
	StatusOrdered   Status = "ORDERED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid requisition Status
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusSourcing, StatusOrdered, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsClosed returns true if the requisition has reached a terminal state
func (s Status) IsClosed() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Line represents one requested material line on a requisition
type Line struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequisitionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID        uuid.UUID       `gorm:"type:uuid;not null"`
	Description       string          `gorm:"type:varchar(500)"`
	RequestedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "requisition_lines"
}

// SourcingOption represents a supplier quote for a requisition line. A
// selected option with a positive quoted quantity commits the organization to
// generate a purchase order line for it.
type SourcingOption struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequisitionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null"`
	QuotedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuotedPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Selected       bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SourcingOption) TableName() string {
	return "sourcing_options"
}

// RequiresOrderLine returns true if this option commits to a purchase order line
func (o *SourcingOption) RequiresOrderLine() bool {
	return o.Selected && o.QuotedQuantity.GreaterThan(decimal.Zero)
}

// Requisition represents an internal material request aggregate root. It is
// referenced by, but does not own, the purchase orders generated from it.
type Requisition struct {
	shared.BaseAggregateRoot
	Number          string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProjectID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status          Status           `gorm:"type:varchar(20);not null;default:'OPEN'"`
	Lines           []Line           `gorm:"foreignKey:RequisitionID;references:ID"`
	SourcingOptions []SourcingOption `gorm:"foreignKey:RequisitionID;references:ID"`
	ClosedAt        *time.Time
}

// TableName returns the table name for GORM
func (Requisition) TableName() string {
	return "requisitions"
}

// NewRequisition creates a new requisition
func NewRequisition(number string, projectID uuid.UUID) (*Requisition, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Requisition number cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}

	return &Requisition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ProjectID:         projectID,
		Status:            StatusOpen,
		Lines:             make([]Line, 0),
		SourcingOptions:   make([]SourcingOption, 0),
	}, nil
}

// AddLine adds a requested material line
func (r *Requisition) AddLine(materialID uuid.UUID, description string, quantity decimal.Decimal) (*Line, error) {
	if r.Status.IsClosed() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a closed requisition")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	now := time.Now()
	line := Line{
		ID:                uuid.New(),
		RequisitionID:     r.ID,
		MaterialID:        materialID,
		Description:       description,
		RequestedQuantity: quantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.Lines = append(r.Lines, line)
	r.UpdatedAt = now
	r.IncrementVersion()

	return &r.Lines[len(r.Lines)-1], nil
}

// AddSourcingOption registers a supplier quote against a requisition line
func (r *Requisition) AddSourcingOption(lineID, supplierID uuid.UUID, quotedQuantity, quotedPrice decimal.Decimal, selected bool) (*SourcingOption, error) {
	if r.Status.IsClosed() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add sourcing options to a closed requisition")
	}
	var found bool
	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			found = true
			break
		}
	}
	if !found {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Requisition line not found")
	}
	if quotedQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quoted quantity cannot be negative")
	}

	now := time.Now()
	option := SourcingOption{
		ID:             uuid.New(),
		RequisitionID:  r.ID,
		LineID:         lineID,
		SupplierID:     supplierID,
		QuotedQuantity: quotedQuantity,
		QuotedPrice:    quotedPrice,
		Selected:       selected,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.SourcingOptions = append(r.SourcingOptions, option)
	r.UpdatedAt = now
	r.IncrementVersion()

	return &r.SourcingOptions[len(r.SourcingOptions)-1], nil
}

// ClearSourcingOptions removes every sourcing option, as the first half of a
// full replace
func (r *Requisition) ClearSourcingOptions() error {
	if r.Status.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify sourcing options of a closed requisition")
	}
	r.SourcingOptions = r.SourcingOptions[:0]
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SelectedOptions returns the sourcing options committed to purchase
func (r *Requisition) SelectedOptions() []SourcingOption {
	options := make([]SourcingOption, 0)
	for _, option := range r.SourcingOptions {
		if option.RequiresOrderLine() {
			options = append(options, option)
		}
	}
	return options
}

// GetLine returns a requisition line by ID
func (r *Requisition) GetLine(lineID uuid.UUID) *Line {
	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			return &r.Lines[idx]
		}
	}
	return nil
}

// Close transitions the requisition into the terminal DELIVERED state.
// Returns false without mutation when the requisition is already closed.
func (r *Requisition) Close() bool {
	if r.Status.IsClosed() {
		return false
	}

	now := time.Now()
	r.Status = StatusDelivered
	r.ClosedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRequisitionClosedEvent(r))

	return true
}

// Cancel transitions the requisition into the terminal CANCELLED state
func (r *Requisition) Cancel() error {
	if r.Status.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Requisition is already closed")
	}

	now := time.Now()
	r.Status = StatusCancelled
	r.ClosedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}
