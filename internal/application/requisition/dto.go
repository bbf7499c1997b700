package requisition

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/shopspring/decimal"
)

// SourcingOptionInput represents one supplier quote in a replace request
type SourcingOptionInput struct {
	LineID         uuid.UUID       `json:"line_id" binding:"required"`
	SupplierID     uuid.UUID       `json:"supplier_id" binding:"required"`
	QuotedQuantity decimal.Decimal `json:"quoted_quantity" binding:"required"`
	QuotedPrice    decimal.Decimal `json:"quoted_price"`
	Selected       bool            `json:"selected"`
}

// ReplaceSourcingOptionsRequest replaces the full sourcing option set of a
// requisition
type ReplaceSourcingOptionsRequest struct {
	RequisitionID uuid.UUID             `json:"requisition_id" binding:"required"`
	Options       []SourcingOptionInput `json:"options" binding:"dive"`
}

// LineResponse represents a requisition line in API responses
type LineResponse struct {
	ID          uuid.UUID       `json:"id"`
	MaterialID  uuid.UUID       `json:"material_id"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// SourcingOptionResponse represents a sourcing option in API responses
type SourcingOptionResponse struct {
	ID             uuid.UUID       `json:"id"`
	LineID         uuid.UUID       `json:"line_id"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	QuotedQuantity decimal.Decimal `json:"quoted_quantity"`
	QuotedPrice    decimal.Decimal `json:"quoted_price"`
	Selected       bool            `json:"selected"`
}

// RequisitionResponse represents a requisition in API responses
type RequisitionResponse struct {
	ID              uuid.UUID                `json:"id"`
	Number          string                   `json:"number"`
	ProjectID       uuid.UUID                `json:"project_id"`
	Status          string                   `json:"status"`
	Lines           []LineResponse           `json:"lines"`
	SourcingOptions []SourcingOptionResponse `json:"sourcing_options"`
	ClosedAt        *time.Time               `json:"closed_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ToRequisitionResponse converts a requisition to its response form
func ToRequisitionResponse(req *requisition.Requisition) RequisitionResponse {
	lines := make([]LineResponse, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = LineResponse{
			ID:          line.ID,
			MaterialID:  line.MaterialID,
			Description: line.Description,
			Quantity:    line.RequestedQuantity,
		}
	}

	options := make([]SourcingOptionResponse, len(req.SourcingOptions))
	for i, option := range req.SourcingOptions {
		options[i] = SourcingOptionResponse{
			ID:             option.ID,
			LineID:         option.LineID,
			SupplierID:     option.SupplierID,
			QuotedQuantity: option.QuotedQuantity,
			QuotedPrice:    option.QuotedPrice,
			Selected:       option.Selected,
		}
	}

	return RequisitionResponse{
		ID:              req.ID,
		Number:          req.Number,
		ProjectID:       req.ProjectID,
		Status:          req.Status.String(),
		Lines:           lines,
		SourcingOptions: options,
		ClosedAt:        req.ClosedAt,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}
