package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderStatusService performs manual operational status transitions and the
// derived-state recomputation they imply. Entering IN_PROCESS starts the
// delivery KPI clock via an audit trail entry.
type OrderStatusService struct {
	scope          reconciliation.TransactionScope
	chain          *reconciliation.Orchestrator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderStatusService creates a new OrderStatusService
func NewOrderStatusService(scope reconciliation.TransactionScope, logger *zap.Logger) *OrderStatusService {
	return &OrderStatusService{
		scope:  scope,
		chain:  reconciliation.NewOrchestrator(scope, logger),
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderStatusService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Transition moves an order to the target operational status. The payable
// gating and, when the order references a requisition, the requisition
// closure rule are re-evaluated in the same transaction.
func (s *OrderStatusService) Transition(ctx context.Context, orderID uuid.UUID, req TransitionOrderRequest) (*OrderResponse, error) {
	target := procurement.OperationalStatus(req.TargetStatus)

	var order *procurement.PurchaseOrder
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		var err error
		order, err = repos.PurchaseOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		previous := order.OperationalStatus
		if err := order.TransitionTo(target); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Save(ctx, order); err != nil {
			return err
		}

		entry, err := audit.NewLogEntry(
			audit.EntityTypePurchaseOrder,
			order.ID,
			audit.ActionStatusChanged,
			fmt.Sprintf("Status changed from %s to %s", previous, target),
		)
		if err != nil {
			return err
		}
		if err := repos.AuditLog().Append(ctx, entry); err != nil {
			return err
		}

		if target == procurement.StatusInProcess {
			if err := s.markCollectionEntry(ctx, repos.AuditLog(), order); err != nil {
				return err
			}
		}

		if _, err := s.chain.OrderStatusChanged(ctx, repos, order.ID); err != nil {
			return err
		}

		events = order.GetDomainEvents()
		order.ClearDomainEvents()

		// Reload to pick up the liquidation recompute.
		order, err = repos.PurchaseOrders().FindByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order.ID, events)

	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.OperationalStatus.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// markCollectionEntry logs the first entry into active processing. Only the
// earliest entry matters for the KPI, so repeats are appended but harmless.
func (s *OrderStatusService) markCollectionEntry(ctx context.Context, log audit.LogRepository, order *procurement.PurchaseOrder) error {
	entry, err := audit.NewLogEntry(
		audit.EntityTypePurchaseOrder,
		order.ID,
		audit.ActionEnteredCollectionProcess,
		fmt.Sprintf("Order %s entered the collection process", order.OrderNumber),
	)
	if err != nil {
		return err
	}
	return log.Append(ctx, entry)
}

func (s *OrderStatusService) publishEvents(ctx context.Context, orderID uuid.UUID, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}
}
