package persistence

import (
	"context"

	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/requisition"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to the callback shares one database transaction,
// so a mutation and the rule chain it triggers commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Serialization failures and lock timeouts, including ones raised at
// commit, come back retryable.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos reconciliation.Repositories) error) error {
	return translateError(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	}))
}

// gormRepositories provides access to all engine repositories within a
// transaction
type gormRepositories struct {
	tx *gorm.DB
}

// PurchaseOrders returns the purchase order repository scoped to the current transaction
func (r *gormRepositories) PurchaseOrders() procurement.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// PaymentEntries returns the payment ledger repository scoped to the current transaction
func (r *gormRepositories) PaymentEntries() procurement.PaymentEntryRepository {
	return NewGormPaymentEntryRepository(r.tx)
}

// PaymentSources returns the payment-source catalog repository scoped to the current transaction
func (r *gormRepositories) PaymentSources() procurement.PaymentSourceRepository {
	return NewGormPaymentSourceRepository(r.tx)
}

// Requisitions returns the requisition repository scoped to the current transaction
func (r *gormRepositories) Requisitions() requisition.Repository {
	return NewGormRequisitionRepository(r.tx)
}

// Positions returns the inventory position repository scoped to the current transaction
func (r *gormRepositories) Positions() inventory.PositionRepository {
	return NewGormPositionRepository(r.tx)
}

// Movements returns the inventory movement repository scoped to the current transaction
func (r *gormRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// Assignments returns the inventory assignment repository scoped to the current transaction
func (r *gormRepositories) Assignments() inventory.AssignmentRepository {
	return NewGormAssignmentRepository(r.tx)
}

// AuditLog returns the audit trail repository scoped to the current transaction
func (r *gormRepositories) AuditLog() audit.LogRepository {
	return NewGormAuditLogRepository(r.tx)
}

// DeliveryKPIs returns the delivery KPI repository scoped to the current transaction
func (r *gormRepositories) DeliveryKPIs() audit.DeliveryKPIRepository {
	return NewGormDeliveryKPIRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ reconciliation.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormRepositories implements Repositories
var _ reconciliation.Repositories = (*gormRepositories)(nil)
