package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// LedgerAggregator computes the active payment sum of a purchase order from
// its payment ledger. Every entry participates regardless of kind: FULL,
// ADVANCE and REVERSAL lines are all independent ledger entries, and a
// reversal's economic effect comes from its own negative amount, not from
// exclusion. There is no voided flag on the ledger; correction is additive.
type LedgerAggregator struct {
	payments procurement.PaymentEntryRepository
}

// NewLedgerAggregator creates a new LedgerAggregator
func NewLedgerAggregator(payments procurement.PaymentEntryRepository) *LedgerAggregator {
	return &LedgerAggregator{payments: payments}
}

// SumActivePayments sums amount over all ledger entries for the order.
// Absence of entries yields zero; it is not an error.
func (a *LedgerAggregator) SumActivePayments(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	sum, err := a.payments.SumByOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
