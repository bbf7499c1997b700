package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// ==================== Payment DTOs ====================

// RegisterPaymentRequest represents a request to register a payment against
// a purchase order
type RegisterPaymentRequest struct {
	OrderID         uuid.UUID       `json:"order_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Kind            string          `json:"kind" binding:"required,oneof=FULL ADVANCE"`
	PaymentSourceID *uuid.UUID      `json:"payment_source_id"`
	Reference       string          `json:"reference" binding:"max=200"`
}

// ReversePaymentRequest represents a request to reverse a registered payment
type ReversePaymentRequest struct {
	PaymentID uuid.UUID `json:"payment_id" binding:"required"`
	Reference string    `json:"reference" binding:"max=200"`
}

// PaymentEntryResponse represents a payment ledger entry in API responses
type PaymentEntryResponse struct {
	ID                  uuid.UUID       `json:"id"`
	OrderID             uuid.UUID       `json:"order_id"`
	Amount              decimal.Decimal `json:"amount"`
	Kind                string          `json:"kind"`
	PaymentSourceID     uuid.UUID       `json:"payment_source_id"`
	ReversalOfPaymentID *uuid.UUID      `json:"reversal_of_payment_id,omitempty"`
	Reference           string          `json:"reference,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ToPaymentEntryResponse converts a payment entry to its response form
func ToPaymentEntryResponse(entry *procurement.PaymentEntry) PaymentEntryResponse {
	return PaymentEntryResponse{
		ID:                  entry.ID,
		OrderID:             entry.PurchaseOrderID,
		Amount:              entry.Amount,
		Kind:                entry.Kind.String(),
		PaymentSourceID:     entry.PaymentSourceID,
		ReversalOfPaymentID: entry.ReversalOfPaymentID,
		Reference:           entry.Reference,
		CreatedAt:           entry.CreatedAt,
	}
}

// ==================== Reception DTOs ====================

// ReceptionLineInput represents one received order line
type ReceptionLineInput struct {
	LineID   uuid.UUID       `json:"line_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// RecordReceptionRequest represents a goods receipt against a purchase order
type RecordReceptionRequest struct {
	OrderID    uuid.UUID            `json:"order_id" binding:"required"`
	LocationID uuid.UUID            `json:"location_id" binding:"required"`
	ProjectID  uuid.UUID            `json:"project_id" binding:"required"`
	Currency   string               `json:"currency" binding:"omitempty,len=3"`
	Lines      []ReceptionLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ReceptionResultResponse summarizes the effect of one goods receipt
type ReceptionResultResponse struct {
	Order             OrderResponse `json:"order"`
	OrderClosed       bool          `json:"order_closed"`
	RequisitionClosed bool          `json:"requisition_closed"`
	IncidentFlagged   bool          `json:"incident_flagged"`
}

// ==================== Order DTOs ====================

// TransitionOrderRequest represents a manual operational status transition
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// OrderLineResponse represents a purchase order line in API responses
type OrderLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	MaterialID       uuid.UUID       `json:"material_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	OverReceived     bool            `json:"over_received"`
}

// OrderResponse represents a purchase order in API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	SupplierID         uuid.UUID           `json:"supplier_id"`
	RequisitionID      *uuid.UUID          `json:"requisition_id,omitempty"`
	Total              decimal.Decimal     `json:"total"`
	AmountPaid         decimal.Decimal     `json:"amount_paid"`
	PaymentStatus      string              `json:"payment_status"`
	OperationalStatus  string              `json:"operational_status"`
	PayableOutstanding bool                `json:"payable_outstanding"`
	PartialDelivery    bool                `json:"partial_delivery"`
	HasIncident        bool                `json:"has_incident"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	Lines              []OrderLineResponse `json:"lines"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a purchase order to its response form
func ToOrderResponse(order *procurement.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			ID:               line.ID,
			MaterialID:       line.MaterialID,
			QuantityOrdered:  line.QuantityOrdered,
			QuantityReceived: line.QuantityReceived,
			UnitCost:         line.UnitCost,
			OverReceived:     line.OverReceived,
		}
	}

	return OrderResponse{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		SupplierID:         order.SupplierID,
		RequisitionID:      order.RequisitionID,
		Total:              order.Total,
		AmountPaid:         order.AmountPaid,
		PaymentStatus:      order.PaymentStatus.String(),
		OperationalStatus:  order.OperationalStatus.String(),
		PayableOutstanding: order.PayableOutstanding,
		PartialDelivery:    order.PartialDelivery,
		HasIncident:        order.HasIncident,
		DeliveredAt:        order.DeliveredAt,
		Lines:              lines,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

// ==================== Payment source DTOs ====================

// CreatePaymentSourceRequest represents a request to add a payment source
type CreatePaymentSourceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Kind string `json:"kind" binding:"required,oneof=BANK CASH CARD OTHER"`
}

// PaymentSourceResponse represents a payment source in API responses
type PaymentSourceResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Active bool      `json:"active"`
}

// ToPaymentSourceResponse converts a payment source to its response form
func ToPaymentSourceResponse(source *procurement.PaymentSource) PaymentSourceResponse {
	return PaymentSourceResponse{
		ID:     source.ID,
		Name:   source.Name,
		Kind:   string(source.Kind),
		Active: source.Active,
	}
}
