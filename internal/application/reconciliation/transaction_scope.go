package reconciliation

import (
	"context"

	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/requisition"
)

// TransactionScope provides transactional access to the engine's repositories.
// All recomputation for a single entity executes inside one scope: the rule
// reads current aggregates, writes derived fields and triggers downstream
// rules synchronously, so the whole chain commits or rolls back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all engine repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type Repositories interface {
	// PurchaseOrders returns the purchase order repository
	PurchaseOrders() procurement.PurchaseOrderRepository
	// PaymentEntries returns the payment ledger repository
	PaymentEntries() procurement.PaymentEntryRepository
	// PaymentSources returns the payment-source catalog repository
	PaymentSources() procurement.PaymentSourceRepository
	// Requisitions returns the requisition repository
	Requisitions() requisition.Repository
	// Positions returns the inventory position repository
	Positions() inventory.PositionRepository
	// Movements returns the inventory movement repository
	Movements() inventory.MovementRepository
	// Assignments returns the inventory assignment repository
	Assignments() inventory.AssignmentRepository
	// AuditLog returns the append-only audit trail repository
	AuditLog() audit.LogRepository
	// DeliveryKPIs returns the delivery KPI sink repository
	DeliveryKPIs() audit.DeliveryKPIRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests where the repositories are in-memory.
type NoOpTransactionScope struct {
	orders       procurement.PurchaseOrderRepository
	payments     procurement.PaymentEntryRepository
	sources      procurement.PaymentSourceRepository
	requisitions requisition.Repository
	positions    inventory.PositionRepository
	movements    inventory.MovementRepository
	assignments  inventory.AssignmentRepository
	auditLog     audit.LogRepository
	kpis         audit.DeliveryKPIRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orders procurement.PurchaseOrderRepository,
	payments procurement.PaymentEntryRepository,
	sources procurement.PaymentSourceRepository,
	requisitions requisition.Repository,
	positions inventory.PositionRepository,
	movements inventory.MovementRepository,
	assignments inventory.AssignmentRepository,
	auditLog audit.LogRepository,
	kpis audit.DeliveryKPIRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orders:       orders,
		payments:     payments,
		sources:      sources,
		requisitions: requisitions,
		positions:    positions,
		movements:    movements,
		assignments:  assignments,
		auditLog:     auditLog,
		kpis:         kpis,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// PurchaseOrders returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrders() procurement.PurchaseOrderRepository {
	return s.orders
}

// PaymentEntries returns the payment ledger repository
func (s *NoOpTransactionScope) PaymentEntries() procurement.PaymentEntryRepository {
	return s.payments
}

// PaymentSources returns the payment-source catalog repository
func (s *NoOpTransactionScope) PaymentSources() procurement.PaymentSourceRepository {
	return s.sources
}

// Requisitions returns the requisition repository
func (s *NoOpTransactionScope) Requisitions() requisition.Repository {
	return s.requisitions
}

// Positions returns the inventory position repository
func (s *NoOpTransactionScope) Positions() inventory.PositionRepository {
	return s.positions
}

// Movements returns the inventory movement repository
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository {
	return s.movements
}

// Assignments returns the inventory assignment repository
func (s *NoOpTransactionScope) Assignments() inventory.AssignmentRepository {
	return s.assignments
}

// AuditLog returns the audit trail repository
func (s *NoOpTransactionScope) AuditLog() audit.LogRepository {
	return s.auditLog
}

// DeliveryKPIs returns the delivery KPI repository
func (s *NoOpTransactionScope) DeliveryKPIs() audit.DeliveryKPIRepository {
	return s.kpis
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ Repositories = (*NoOpTransactionScope)(nil)
