package procurement

import (
	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated = "PurchaseOrderCreated"
	EventTypeOrderStatusChanged   = "PurchaseOrderStatusChanged"
	EventTypeOrderDelivered       = "PurchaseOrderDelivered"
	EventTypePaymentRegistered    = "PaymentRegistered"
	EventTypePaymentReversed      = "PaymentReversed"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	RequisitionID *uuid.UUID      `json:"requisition_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
		RequisitionID:   order.RequisitionID,
		Total:           order.Total,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// OrderStatusChangedEvent is raised on a manual operational status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID         `json:"order_id"`
	OrderNumber    string            `json:"order_number"`
	PreviousStatus OperationalStatus `json:"previous_status"`
	NewStatus      OperationalStatus `json:"new_status"`
	RequisitionID  *uuid.UUID        `json:"requisition_id,omitempty"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *PurchaseOrder, previous OperationalStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PreviousStatus:  previous,
		NewStatus:       order.OperationalStatus,
		RequisitionID:   order.RequisitionID,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}

// OrderDeliveredEvent is raised when the auto-closure rule completes an order
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID         `json:"order_id"`
	OrderNumber    string            `json:"order_number"`
	PreviousStatus OperationalStatus `json:"previous_status"`
	RequisitionID  *uuid.UUID        `json:"requisition_id,omitempty"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(order *PurchaseOrder, previous OperationalStatus) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PreviousStatus:  previous,
		RequisitionID:   order.RequisitionID,
	}
}

// EventType returns the event type name
func (e *OrderDeliveredEvent) EventType() string {
	return EventTypeOrderDelivered
}

// PaymentRegisteredEvent is raised when a payment ledger entry is created
type PaymentRegisteredEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID       `json:"order_id"`
	EntryID  uuid.UUID       `json:"entry_id"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     PaymentKind     `json:"kind"`
	SourceID uuid.UUID       `json:"source_id"`
}

// NewPaymentRegisteredEvent creates a new PaymentRegisteredEvent
func NewPaymentRegisteredEvent(entry *PaymentEntry) *PaymentRegisteredEvent {
	return &PaymentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRegistered, AggregateTypePurchaseOrder, entry.PurchaseOrderID),
		OrderID:         entry.PurchaseOrderID,
		EntryID:         entry.ID,
		Amount:          entry.Amount,
		Kind:            entry.Kind,
		SourceID:        entry.PaymentSourceID,
	}
}

// EventType returns the event type name
func (e *PaymentRegisteredEvent) EventType() string {
	return EventTypePaymentRegistered
}

// PaymentReversedEvent is raised when a reversal entry is appended to the ledger
type PaymentReversedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	ReversalEntryID uuid.UUID       `json:"reversal_entry_id"`
	OriginalEntryID uuid.UUID       `json:"original_entry_id"`
	Amount          decimal.Decimal `json:"amount"`
}

// NewPaymentReversedEvent creates a new PaymentReversedEvent
func NewPaymentReversedEvent(reversal *PaymentEntry) *PaymentReversedEvent {
	var originalID uuid.UUID
	if reversal.ReversalOfPaymentID != nil {
		originalID = *reversal.ReversalOfPaymentID
	}
	return &PaymentReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentReversed, AggregateTypePurchaseOrder, reversal.PurchaseOrderID),
		OrderID:         reversal.PurchaseOrderID,
		ReversalEntryID: reversal.ID,
		OriginalEntryID: originalID,
		Amount:          reversal.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentReversedEvent) EventType() string {
	return EventTypePaymentReversed
}
