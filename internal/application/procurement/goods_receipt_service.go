package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultReceiptCurrency is used when a reception carries no currency
const DefaultReceiptCurrency = "MXN"

// GoodsReceiptService records goods receipts against purchase order lines
// and drives the downstream chain: inventory positions, partial-delivery and
// incident flags, order auto-closure and requisition closure. The receipt
// and every derived write commit as one transaction.
type GoodsReceiptService struct {
	scope          reconciliation.TransactionScope
	chain          *reconciliation.Orchestrator
	stockProjectID uuid.UUID
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewGoodsReceiptService creates a new GoodsReceiptService. stockProjectID
// designates the project whose receptions count as warehouse stock.
func NewGoodsReceiptService(scope reconciliation.TransactionScope, stockProjectID uuid.UUID, logger *zap.Logger) *GoodsReceiptService {
	return &GoodsReceiptService{
		scope:          scope,
		chain:          reconciliation.NewOrchestrator(scope, logger),
		stockProjectID: stockProjectID,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *GoodsReceiptService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordReception applies received quantities to the order's lines and runs
// the full downstream chain. Over-receipt is accepted and flagged as an
// incident, never rejected: goods on the dock are a physical fact.
func (s *GoodsReceiptService) RecordReception(ctx context.Context, req RecordReceptionRequest) (*ReceptionResultResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = DefaultReceiptCurrency
	}

	var order *procurement.PurchaseOrder
	var result ReceptionResultResponse

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		var err error
		order, err = repos.PurchaseOrders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order.OperationalStatus.IsTerminal() {
			return shared.NewDomainError("INVALID_STATE", "Cannot receive goods on a resolved order")
		}

		reconciler := reconciliation.NewInventoryReconciler(
			repos.Positions(),
			repos.Movements(),
			repos.Assignments(),
			s.stockProjectID,
			s.logger,
		)

		for _, input := range req.Lines {
			line := order.GetLine(input.LineID)
			if line == nil {
				return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
			}
			if err := line.AddReceivedQuantity(input.Quantity); err != nil {
				return err
			}
			if line.OverReceived {
				order.FlagIncident()
				result.IncidentFlagged = true
			}

			event := reconciliation.ReceptionEvent{
				MaterialID:        line.MaterialID,
				LocationID:        req.LocationID,
				ProjectID:         req.ProjectID,
				RequisitionLineID: line.RequisitionLineID,
				Quantity:          input.Quantity,
				UnitCost:          line.UnitCost,
				Currency:          currency,
			}
			if err := reconciler.ApplyReception(ctx, event); err != nil {
				return err
			}
		}

		if order.HasReceivedAnyGoods() && !order.IsFullyReceived() {
			order.MarkPartialDelivery()
		}
		if err := repos.PurchaseOrders().Save(ctx, order); err != nil {
			return err
		}

		chain, err := s.chain.ReceptionChanged(ctx, repos, order.ID)
		if err != nil {
			return err
		}
		result.OrderClosed = chain.OrderClosed
		result.RequisitionClosed = chain.RequisitionClosed

		if result.OrderClosed {
			// Reload so the response reflects the closure.
			order, err = repos.PurchaseOrders().FindByID(ctx, order.ID)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("goods receipt recorded",
		zap.String("order_id", order.ID.String()),
		zap.Int("lines", len(req.Lines)),
		zap.Bool("order_closed", result.OrderClosed),
		zap.Bool("requisition_closed", result.RequisitionClosed),
	)

	result.Order = ToOrderResponse(order)
	return &result, nil
}

// ReverseMovement voids an inventory movement and applies the compensating
// entry, for receipts registered in error
func (s *GoodsReceiptService) ReverseMovement(ctx context.Context, movementID uuid.UUID, reason string) error {
	return s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		reconciler := reconciliation.NewInventoryReconciler(
			repos.Positions(),
			repos.Movements(),
			repos.Assignments(),
			s.stockProjectID,
			s.logger,
		)
		_, err := reconciler.ReverseMovement(ctx, movementID, reason)
		return err
	})
}

func (s *GoodsReceiptService) publishEvents(ctx context.Context, order *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	order.ClearDomainEvents()
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}
