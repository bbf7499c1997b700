package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackfillStats summarizes one backfill pass
type BackfillStats struct {
	OrdersProcessed    int `json:"orders_processed"`
	OrdersClosed       int `json:"orders_closed"`
	RequisitionsClosed int `json:"requisitions_closed"`
	Failures           int `json:"failures"`
}

// BackfillService re-evaluates every entity once, idempotently, producing
// the same end state as if the reactive rules had fired all along. Historical
// data predates the rules, so a one-shot batch pass is the only way to bring
// it into line. Each entity is processed in its own transaction; a failure on
// one entity is logged and does not stop the pass.
type BackfillService struct {
	scope  TransactionScope
	chain  *Orchestrator
	logger *zap.Logger
}

// NewBackfillService creates a new BackfillService
func NewBackfillService(scope TransactionScope, logger *zap.Logger) *BackfillService {
	return &BackfillService{
		scope:  scope,
		chain:  NewOrchestrator(scope, logger),
		logger: logger,
	}
}

// Run executes a full backfill pass: liquidation and auto-closure for every
// purchase order, then closure for every requisition referenced by at least
// one order.
func (s *BackfillService) Run(ctx context.Context) (BackfillStats, error) {
	stats := BackfillStats{}

	var orderIDs []uuid.UUID
	if err := s.scope.Execute(ctx, func(repos Repositories) error {
		ids, err := repos.PurchaseOrders().ListIDs(ctx)
		if err != nil {
			return err
		}
		orderIDs = ids
		return nil
	}); err != nil {
		return stats, err
	}

	for _, orderID := range orderIDs {
		err := s.scope.Execute(ctx, func(repos Repositories) error {
			if err := s.chain.PaymentChanged(ctx, repos, orderID); err != nil {
				return err
			}

			// Requisitions get their own sweep below, so only the order
			// half of the reception chain runs here.
			reception := NewReceptionCompletionService(
				repos.PurchaseOrders(),
				repos.AuditLog(),
				repos.DeliveryKPIs(),
				s.logger,
			)
			closed, err := reception.MaybeCloseOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if closed {
				stats.OrdersClosed++
			}
			return nil
		})
		if err != nil {
			stats.Failures++
			s.logger.Error("backfill failed for order",
				zap.String("order_id", orderID.String()),
				zap.Error(err),
			)
			continue
		}
		stats.OrdersProcessed++
	}

	var requisitionIDs []uuid.UUID
	if err := s.scope.Execute(ctx, func(repos Repositories) error {
		ids, err := repos.Requisitions().ListIDsWithOrders(ctx)
		if err != nil {
			return err
		}
		requisitionIDs = ids
		return nil
	}); err != nil {
		return stats, err
	}

	for _, requisitionID := range requisitionIDs {
		err := s.scope.Execute(ctx, func(repos Repositories) error {
			closed, err := s.chain.SourcingOptionChanged(ctx, repos, requisitionID)
			if err != nil {
				return err
			}
			if closed {
				stats.RequisitionsClosed++
			}
			return nil
		})
		if err != nil {
			stats.Failures++
			s.logger.Error("backfill failed for requisition",
				zap.String("requisition_id", requisitionID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("backfill pass complete",
		zap.Int("orders_processed", stats.OrdersProcessed),
		zap.Int("orders_closed", stats.OrdersClosed),
		zap.Int("requisitions_closed", stats.RequisitionsClosed),
		zap.Int("failures", stats.Failures),
	)

	return stats, nil
}
