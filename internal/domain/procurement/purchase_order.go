package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OperationalStatus represents the delivery lifecycle status of a purchase order
type OperationalStatus string

const (
	StatusAwaitingApproval    OperationalStatus = "AWAITING_APPROVAL"
	StatusApproved            OperationalStatus = "APPROVED"
	StatusInProcess           OperationalStatus = "IN_PROCESS"
	StatusDelivered           OperationalStatus = "DELIVERED"
	StatusRejected            OperationalStatus = "REJECTED"
	StatusCancelled           OperationalStatus = "CANCELLED"
	StatusHold                OperationalStatus = "HOLD"
	StatusAwaitingWireConfirm OperationalStatus = "AWAITING_WIRE_CONFIRM"
)

// IsValid checks if the status is a valid OperationalStatus
func (s OperationalStatus) IsValid() bool {
	switch s {
	case StatusAwaitingApproval, StatusApproved, StatusInProcess, StatusDelivered,
		StatusRejected, StatusCancelled, StatusHold, StatusAwaitingWireConfirm:
		return true
	}
	return false
}

// String returns the string representation of OperationalStatus
func (s OperationalStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the order status is resolved for requisition
// closure purposes
func (s OperationalStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// DELIVERED is never a valid manual target: it is reached only through
// full reception via the auto-closure rule.
func (s OperationalStatus) CanTransitionTo(target OperationalStatus) bool {
	switch s {
	case StatusAwaitingApproval:
		return target == StatusApproved || target == StatusRejected ||
			target == StatusCancelled || target == StatusHold
	case StatusApproved:
		return target == StatusInProcess || target == StatusAwaitingWireConfirm ||
			target == StatusHold || target == StatusCancelled
	case StatusAwaitingWireConfirm:
		return target == StatusInProcess || target == StatusHold || target == StatusCancelled
	case StatusHold:
		return target == StatusApproved || target == StatusInProcess || target == StatusCancelled
	case StatusInProcess:
		return target == StatusHold || target == StatusCancelled
	case StatusDelivered, StatusRejected, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// payableExcludedStatuses is the deny-list gating the payable_outstanding flag.
// An order in any of these states carries no accounts-payable obligation even
// when its ledger balance is short of the total.
var payableExcludedStatuses = map[OperationalStatus]struct{}{
	StatusAwaitingApproval:    {},
	StatusRejected:            {},
	StatusCancelled:           {},
	StatusHold:                {},
	StatusAwaitingWireConfirm: {},
}

// ExcludedFromPayables returns true if the status suppresses the
// payable_outstanding flag
func (s OperationalStatus) ExcludedFromPayables() bool {
	_, ok := payableExcludedStatuses[s]
	return ok
}

// PaymentStatus represents the liquidation status of a purchase order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ComputePaymentStatus classifies the ledger balance against the order total
func ComputePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusPending
	default:
		return PaymentStatusPartial
	}
}

// PurchaseOrderLine represents a line item in a purchase order
type PurchaseOrderLine struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequisitionLineID *uuid.UUID      `gorm:"type:uuid;index"`
	MaterialID        uuid.UUID       `gorm:"type:uuid;not null"`
	Description       string          `gorm:"type:varchar(500)"`
	QuantityOrdered   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityReceived  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OverReceived      bool            `gorm:"not null;default:false"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// NewPurchaseOrderLine creates a new purchase order line
func NewPurchaseOrderLine(orderID, materialID uuid.UUID, requisitionLineID *uuid.UUID, quantity, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderLine{
		ID:                uuid.New(),
		OrderID:           orderID,
		RequisitionLineID: requisitionLineID,
		MaterialID:        materialID,
		QuantityOrdered:   quantity,
		QuantityReceived:  decimal.Zero,
		UnitCost:          unitCost,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// AddReceivedQuantity adds to the received quantity. Received quantities are
// monotonically non-decreasing; over-receipt is not rejected, only flagged.
func (l *PurchaseOrderLine) AddReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	l.QuantityReceived = l.QuantityReceived.Add(quantity)
	if l.QuantityReceived.GreaterThan(l.QuantityOrdered) {
		l.OverReceived = true
	}
	l.UpdatedAt = time.Now()

	return nil
}

// IsFullyReceived returns true if the received quantity covers the ordered quantity
func (l *PurchaseOrderLine) IsFullyReceived() bool {
	return l.QuantityReceived.GreaterThanOrEqual(l.QuantityOrdered)
}

// RemainingQuantity returns the quantity still to be received
func (l *PurchaseOrderLine) RemainingQuantity() decimal.Decimal {
	remaining := l.QuantityOrdered.Sub(l.QuantityReceived)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PurchaseOrder represents a purchase order aggregate root.
// amount_paid, payment_status and payable_outstanding are derived fields
// recomputed from the payment ledger; they are never edited directly.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber            string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID             uuid.UUID           `gorm:"type:uuid;not null;index"`
	RequisitionID          *uuid.UUID          `gorm:"type:uuid;index"`
	Lines                  []PurchaseOrderLine `gorm:"foreignKey:OrderID;references:ID"`
	Total                  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid             decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus          PaymentStatus       `gorm:"type:varchar(20);not null;default:'PENDING'"`
	OperationalStatus      OperationalStatus   `gorm:"type:varchar(30);not null;default:'AWAITING_APPROVAL'"`
	PayableOutstanding     bool                `gorm:"not null;default:false"`
	PartialDelivery        bool                `gorm:"not null;default:false"`
	HasIncident            bool                `gorm:"not null;default:false"`
	CollectionMethod       string              `gorm:"type:varchar(50)"`
	DeliveryResponsibility string              `gorm:"type:varchar(50)"`
	DeliveredAt            *time.Time
	CancelledAt            *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, total decimal.Decimal, requisitionID *uuid.UUID) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		RequisitionID:     requisitionID,
		Lines:             make([]PurchaseOrderLine, 0),
		Total:             total,
		AmountPaid:        decimal.Zero,
		PaymentStatus:     PaymentStatusPending,
		OperationalStatus: StatusAwaitingApproval,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a new line to the order
func (o *PurchaseOrder) AddLine(materialID uuid.UUID, requisitionLineID *uuid.UUID, quantity, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if o.OperationalStatus.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a resolved order")
	}

	line, err := NewPurchaseOrderLine(o.ID, materialID, requisitionLineID, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return line, nil
}

// GetLine returns a line by its ID
func (o *PurchaseOrder) GetLine(lineID uuid.UUID) *PurchaseOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// IsFullyReceived returns true iff the order has at least one line and every
// line has been fully received
func (o *PurchaseOrder) IsFullyReceived() bool {
	for _, line := range o.Lines {
		if !line.IsFullyReceived() {
			return false
		}
	}
	return len(o.Lines) > 0
}

// HasReceivedAnyGoods checks if any goods have been received
func (o *PurchaseOrder) HasReceivedAnyGoods() bool {
	for _, line := range o.Lines {
		if line.QuantityReceived.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// ApplyLiquidation recomputes the derived payment fields from the active
// ledger sum. Returns true if any derived field changed, so callers can skip
// redundant writes and the rule stays a no-op under replay.
func (o *PurchaseOrder) ApplyLiquidation(ledgerSum decimal.Decimal) bool {
	status := ComputePaymentStatus(ledgerSum, o.Total)
	outstanding := ledgerSum.LessThan(o.Total) && !o.OperationalStatus.ExcludedFromPayables()

	if o.AmountPaid.Equal(ledgerSum) && o.PaymentStatus == status && o.PayableOutstanding == outstanding {
		return false
	}

	o.AmountPaid = ledgerSum
	o.PaymentStatus = status
	o.PayableOutstanding = outstanding
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return true
}

// TransitionTo performs a manual operational status transition.
// DELIVERED cannot be reached this way.
func (o *PurchaseOrder) TransitionTo(target OperationalStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %s", target))
	}
	if target == StatusDelivered {
		return shared.NewDomainError("INVALID_TRANSITION", "DELIVERED is reached only through full reception")
	}
	if !o.OperationalStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to %s", o.OperationalStatus, target))
	}

	previous := o.OperationalStatus
	now := time.Now()
	o.OperationalStatus = target
	if target == StatusCancelled {
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// CloseDelivered transitions the order into the terminal DELIVERED state after
// full reception. Returns false without mutation when the order is already
// delivered, keeping the closure rule idempotent.
func (o *PurchaseOrder) CloseDelivered() bool {
	if o.OperationalStatus == StatusDelivered {
		return false
	}

	previous := o.OperationalStatus
	now := time.Now()
	o.OperationalStatus = StatusDelivered
	o.PartialDelivery = false
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o, previous))

	return true
}

// MarkPartialDelivery flags the order as partially delivered when some but not
// all lines are complete
func (o *PurchaseOrder) MarkPartialDelivery() {
	if o.PartialDelivery || o.OperationalStatus == StatusDelivered {
		return
	}
	o.PartialDelivery = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// FlagIncident marks the order as having a reception incident (e.g. over-receipt)
func (o *PurchaseOrder) FlagIncident() {
	if o.HasIncident {
		return
	}
	o.HasIncident = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsDelivered returns true if the order is in the DELIVERED state
func (o *PurchaseOrder) IsDelivered() bool {
	return o.OperationalStatus == StatusDelivered
}
