package event

import (
	"context"

	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/procurement/backend/internal/domain/shared"
	infraevent "github.com/procurement/backend/internal/infrastructure/event"
	"go.uber.org/zap"
)

// NotificationHandler turns after-commit domain events into structured log
// notifications. The reconciliation chain already ran inside the transaction
// that raised the event, so handlers here only observe, never mutate.
type NotificationHandler struct {
	logger *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

// EventTypes returns the event types this handler observes
func (h *NotificationHandler) EventTypes() []string {
	return []string{
		procurement.EventTypePaymentRegistered,
		procurement.EventTypePaymentReversed,
		procurement.EventTypeOrderStatusChanged,
		procurement.EventTypeOrderDelivered,
		requisition.EventTypeRequisitionClosed,
		inventory.EventTypeStockReceived,
		inventory.EventTypeMovementReversed,
	}
}

// Handle logs the notification for one domain event
func (h *NotificationHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *procurement.PaymentRegisteredEvent:
		h.logger.Info("payment registered notification",
			zap.String("order_id", e.OrderID.String()),
			zap.String("amount", e.Amount.String()),
			zap.String("kind", string(e.Kind)),
		)
	case *procurement.PaymentReversedEvent:
		h.logger.Info("payment reversed notification",
			zap.String("order_id", e.OrderID.String()),
			zap.String("original_entry_id", e.OriginalEntryID.String()),
		)
	case *procurement.OrderStatusChangedEvent:
		h.logger.Info("order status changed notification",
			zap.String("order_number", e.OrderNumber),
			zap.String("previous_status", string(e.PreviousStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)
	case *procurement.OrderDeliveredEvent:
		// The delivery KPI record was emitted in-transaction; this marks
		// the moment downstream consumers learn about it.
		h.logger.Info("order delivered notification",
			zap.String("order_number", e.OrderNumber),
			zap.String("previous_status", string(e.PreviousStatus)),
		)
	case *requisition.RequisitionClosedEvent:
		h.logger.Info("requisition closed notification",
			zap.String("number", e.Number),
			zap.String("project_id", e.ProjectID.String()),
		)
	case *inventory.StockReceivedEvent:
		h.logger.Info("stock received notification",
			zap.String("material_id", e.MaterialID.String()),
			zap.String("quantity", e.Quantity.String()),
			zap.Bool("assigned", e.Assigned),
		)
	case *inventory.MovementReversedEvent:
		h.logger.Info("movement reversed notification",
			zap.String("original_movement_id", e.OriginalMovementID.String()),
			zap.String("reversal_movement_id", e.ReversalMovementID.String()),
		)
	default:
		h.logger.Debug("unhandled notification event",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

// RegisterNotificationHandlers subscribes the notification handler on the
// bus, wrapped so redelivered events are processed at most once
func RegisterNotificationHandlers(
	bus shared.EventSubscriber,
	store shared.IdempotencyStore,
	config shared.IdempotencyConfig,
	logger *zap.Logger,
) {
	handler := NewNotificationHandler(logger)
	wrapped := infraevent.NewIdempotentHandler(handler, store, logger,
		infraevent.WithIdempotencyConfig(config),
	)
	bus.Subscribe(wrapped, handler.EventTypes()...)
}
