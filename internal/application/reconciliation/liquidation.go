package reconciliation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LiquidationService derives a purchase order's payment_status and
// payable_outstanding flag from its payment ledger. It runs after any ledger
// mutation and after any operational status change, since the deny-list
// gating of payable_outstanding depends on both.
type LiquidationService struct {
	orders procurement.PurchaseOrderRepository
	ledger *LedgerAggregator
	logger *zap.Logger
}

// NewLiquidationService creates a new LiquidationService
func NewLiquidationService(orders procurement.PurchaseOrderRepository, ledger *LedgerAggregator, logger *zap.Logger) *LiquidationService {
	return &LiquidationService{
		orders: orders,
		ledger: ledger,
		logger: logger,
	}
}

// RecomputeLiquidation recomputes the derived payment fields of an order.
// A missing order is a silent no-op: recomputation rules only act on rows
// that exist. The write is skipped when the derived state is already
// consistent, so replays are no-ops.
func (s *LiquidationService) RecomputeLiquidation(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	sum, err := s.ledger.SumActivePayments(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.ApplyLiquidation(sum) {
		return nil
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return err
	}

	s.logger.Debug("liquidation recomputed",
		zap.String("order_id", orderID.String()),
		zap.String("amount_paid", order.AmountPaid.String()),
		zap.String("payment_status", order.PaymentStatus.String()),
		zap.Bool("payable_outstanding", order.PayableOutstanding),
	)

	return nil
}
