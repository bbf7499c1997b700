package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentKind represents the kind of a payment ledger entry
type PaymentKind string

const (
	PaymentKindFull     PaymentKind = "FULL"
	PaymentKindAdvance  PaymentKind = "ADVANCE"
	PaymentKindReversal PaymentKind = "REVERSAL"
)

// IsValid checks if the kind is a valid PaymentKind
func (k PaymentKind) IsValid() bool {
	switch k {
	case PaymentKindFull, PaymentKindAdvance, PaymentKindReversal:
		return true
	}
	return false
}

// String returns the string representation of PaymentKind
func (k PaymentKind) String() string {
	return string(k)
}

// PaymentEntry represents one immutable line in a purchase order's payment
// ledger. Corrections are additive: a reversal is a new entry carrying the
// negated amount of the original, never a mutation or a voided flag. The
// active sum over all entries of an order is the order's amount_paid.
type PaymentEntry struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Kind                PaymentKind     `gorm:"type:varchar(20);not null"`
	PaymentSourceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReversalOfPaymentID *uuid.UUID      `gorm:"type:uuid;index"`
	Reference           string          `gorm:"type:varchar(200)"`
	CreatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentEntry) TableName() string {
	return "payment_entries"
}

// NewPaymentEntry creates a new FULL or ADVANCE payment ledger entry
func NewPaymentEntry(orderID uuid.UUID, amount decimal.Decimal, kind PaymentKind, sourceID uuid.UUID, reference string) (*PaymentEntry, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_KIND", "Payment kind is not valid")
	}
	if kind == PaymentKindReversal {
		return nil, shared.NewDomainError("INVALID_PAYMENT_KIND", "Reversal entries must reference the payment they reverse")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_SOURCE", "Payment source is required")
	}

	return &PaymentEntry{
		ID:              uuid.New(),
		PurchaseOrderID: orderID,
		Amount:          amount,
		Kind:            kind,
		PaymentSourceID: sourceID,
		Reference:       reference,
		CreatedAt:       time.Now(),
	}, nil
}

// NewReversalEntry creates the offsetting ledger entry for an existing
// payment. The economic effect comes from the negated amount; the original
// entry is left untouched.
func NewReversalEntry(original *PaymentEntry, reference string) (*PaymentEntry, error) {
	if original == nil {
		return nil, shared.ErrNotFound
	}
	if original.Kind == PaymentKindReversal {
		return nil, shared.NewDomainError("INVALID_REVERSAL", "Cannot reverse a reversal entry")
	}

	originalID := original.ID
	return &PaymentEntry{
		ID:                  uuid.New(),
		PurchaseOrderID:     original.PurchaseOrderID,
		Amount:              original.Amount.Neg(),
		Kind:                PaymentKindReversal,
		PaymentSourceID:     original.PaymentSourceID,
		ReversalOfPaymentID: &originalID,
		Reference:           reference,
		CreatedAt:           time.Now(),
	}, nil
}

// IsReversal returns true if the entry is a reversal
func (e *PaymentEntry) IsReversal() bool {
	return e.Kind == PaymentKindReversal
}
