package reconciliation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ChainResult reports which downstream closures a chain run produced.
type ChainResult struct {
	OrderClosed       bool
	RequisitionClosed bool
}

// Orchestrator is the explicit service-layer replacement for the database
// trigger chains. Each hook runs the affected rule and its downstream rules
// synchronously inside one transaction, so a requisition closure and the
// order update that triggered it land in a single commit. Every rule is
// idempotent under replay, so re-firing a hook on an already-consistent
// entity is a no-op.
//
// The repos-taking methods run inside an existing transaction; application
// services call them from within their own scope.Execute so the triggering
// write and the chain commit together. The On* hooks wrap them in a fresh
// transaction for callers that have none.
type Orchestrator struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(scope TransactionScope, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		scope:  scope,
		logger: logger,
	}
}

// PaymentChanged recomputes the order's liquidation after any insert of a
// payment ledger entry (registration or reversal)
func (o *Orchestrator) PaymentChanged(ctx context.Context, repos Repositories, orderID uuid.UUID) error {
	liquidation := NewLiquidationService(
		repos.PurchaseOrders(),
		NewLedgerAggregator(repos.PaymentEntries()),
		o.logger,
	)
	return liquidation.RecomputeLiquidation(ctx, orderID)
}

// ReceptionChanged runs the full downstream chain after a line's received
// quantity changed: completion detection, order auto-closure with its KPI,
// then requisition auto-closure.
func (o *Orchestrator) ReceptionChanged(ctx context.Context, repos Repositories, orderID uuid.UUID) (ChainResult, error) {
	reception := NewReceptionCompletionService(
		repos.PurchaseOrders(),
		repos.AuditLog(),
		repos.DeliveryKPIs(),
		o.logger,
	)
	closed, err := reception.MaybeCloseOrder(ctx, orderID)
	if err != nil || !closed {
		return ChainResult{}, err
	}
	reqClosed, err := o.closeRequisitionOf(ctx, repos, orderID)
	return ChainResult{OrderClosed: true, RequisitionClosed: reqClosed}, err
}

// OrderStatusChanged re-gates the payable flag and re-evaluates requisition
// closure after an operational status transition
func (o *Orchestrator) OrderStatusChanged(ctx context.Context, repos Repositories, orderID uuid.UUID) (ChainResult, error) {
	if err := o.PaymentChanged(ctx, repos, orderID); err != nil {
		return ChainResult{}, err
	}
	reqClosed, err := o.closeRequisitionOf(ctx, repos, orderID)
	return ChainResult{RequisitionClosed: reqClosed}, err
}

// SourcingOptionChanged re-evaluates requisition closure after a sourcing
// option was inserted, updated or deleted
func (o *Orchestrator) SourcingOptionChanged(ctx context.Context, repos Repositories, requisitionID uuid.UUID) (bool, error) {
	closure := NewRequisitionClosureService(
		repos.Requisitions(),
		repos.PurchaseOrders(),
		repos.AuditLog(),
		o.logger,
	)
	return closure.MaybeCloseRequisition(ctx, requisitionID)
}

// OnPaymentChanged runs PaymentChanged in its own transaction
func (o *Orchestrator) OnPaymentChanged(ctx context.Context, orderID uuid.UUID) error {
	return o.scope.Execute(ctx, func(repos Repositories) error {
		return o.PaymentChanged(ctx, repos, orderID)
	})
}

// OnReceptionChanged runs ReceptionChanged in its own transaction
func (o *Orchestrator) OnReceptionChanged(ctx context.Context, orderID uuid.UUID) error {
	return o.scope.Execute(ctx, func(repos Repositories) error {
		_, err := o.ReceptionChanged(ctx, repos, orderID)
		return err
	})
}

// OnOrderLinesChanged re-evaluates the same chain after order lines were
// inserted or deleted
func (o *Orchestrator) OnOrderLinesChanged(ctx context.Context, orderID uuid.UUID) error {
	return o.OnReceptionChanged(ctx, orderID)
}

// OnOrderStatusChanged runs OrderStatusChanged in its own transaction
func (o *Orchestrator) OnOrderStatusChanged(ctx context.Context, orderID uuid.UUID) error {
	return o.scope.Execute(ctx, func(repos Repositories) error {
		_, err := o.OrderStatusChanged(ctx, repos, orderID)
		return err
	})
}

// OnSourcingOptionChanged runs SourcingOptionChanged in its own transaction
func (o *Orchestrator) OnSourcingOptionChanged(ctx context.Context, requisitionID uuid.UUID) error {
	return o.scope.Execute(ctx, func(repos Repositories) error {
		_, err := o.SourcingOptionChanged(ctx, repos, requisitionID)
		return err
	})
}

// closeRequisitionOf fires requisition closure for the requisition the order
// references, if any
func (o *Orchestrator) closeRequisitionOf(ctx context.Context, repos Repositories, orderID uuid.UUID) (bool, error) {
	order, err := repos.PurchaseOrders().FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if order.RequisitionID == nil {
		return false, nil
	}

	closure := NewRequisitionClosureService(
		repos.Requisitions(),
		repos.PurchaseOrders(),
		repos.AuditLog(),
		o.logger,
	)
	return closure.MaybeCloseRequisition(ctx, *order.RequisitionID)
}
