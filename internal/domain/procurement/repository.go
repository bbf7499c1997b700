package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindByRequisition finds all purchase orders referencing a requisition,
	// with their lines
	FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order and its lines
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveLine updates a single order line
	SaveLine(ctx context.Context, line *PurchaseOrderLine) error

	// ListIDs returns the identifiers of all purchase orders, for backfill passes
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PaymentEntryRepository defines the interface for the payment ledger.
// Entries are immutable once created; there is no update or delete.
type PaymentEntryRepository interface {
	// FindByID finds a payment entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentEntry, error)

	// FindByOrder finds all ledger entries for a purchase order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentEntry, error)

	// FindReversalOf finds the reversal entry referencing the given original, if any
	FindReversalOf(ctx context.Context, originalID uuid.UUID) (*PaymentEntry, error)

	// SumByOrder sums amount over all entries for an order; zero when none exist
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	// Save appends a new ledger entry
	Save(ctx context.Context, entry *PaymentEntry) error
}

// PaymentSourceRepository defines the interface for the payment-source catalog
type PaymentSourceRepository interface {
	// FindByID finds a payment source by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentSource, error)

	// FindByName finds a payment source by its unique name
	FindByName(ctx context.Context, name string) (*PaymentSource, error)

	// Save creates or updates a payment source
	Save(ctx context.Context, source *PaymentSource) error

	// EnsureFallback returns the UNSPECIFIED fallback source, creating it if absent
	EnsureFallback(ctx context.Context) (*PaymentSource, error)
}
