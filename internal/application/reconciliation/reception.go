package reconciliation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceptionCompletionService detects full reception of a purchase order and
// applies the auto-closure rule: the only path into the terminal DELIVERED
// state. Closure also emits the delivery timing KPI when the order's entry
// into the collection process was logged.
type ReceptionCompletionService struct {
	orders   procurement.PurchaseOrderRepository
	auditLog audit.LogRepository
	kpis     audit.DeliveryKPIRepository
	logger   *zap.Logger
}

// NewReceptionCompletionService creates a new ReceptionCompletionService
func NewReceptionCompletionService(
	orders procurement.PurchaseOrderRepository,
	auditLog audit.LogRepository,
	kpis audit.DeliveryKPIRepository,
	logger *zap.Logger,
) *ReceptionCompletionService {
	return &ReceptionCompletionService{
		orders:   orders,
		auditLog: auditLog,
		kpis:     kpis,
		logger:   logger,
	}
}

// IsOrderFullyReceived reports whether the order has at least one line and
// every line's received quantity covers its ordered quantity. A missing
// order reports false.
func (s *ReceptionCompletionService) IsOrderFullyReceived(ctx context.Context, orderID uuid.UUID) (bool, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return order.IsFullyReceived(), nil
}

// MaybeCloseOrder transitions a fully received order into DELIVERED and
// records the timing KPI. Returns whether a closure occurred. Calling it on
// an already delivered order is a no-op: no duplicate KPI record, no
// duplicate audit entry.
func (s *ReceptionCompletionService) MaybeCloseOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if order.IsDelivered() {
		return false, nil
	}
	if !order.IsFullyReceived() {
		return false, nil
	}

	if !order.CloseDelivered() {
		return false, nil
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return false, err
	}

	if err := s.emitDeliveryKPI(ctx, order); err != nil {
		return false, err
	}

	entry, err := audit.NewLogEntry(
		audit.EntityTypePurchaseOrder,
		order.ID,
		audit.ActionAutoClosedDelivered,
		fmt.Sprintf("Order %s auto-closed on full reception", order.OrderNumber),
	)
	if err != nil {
		return false, err
	}
	if err := s.auditLog.Append(ctx, entry); err != nil {
		return false, err
	}

	s.logger.Info("order auto-closed as delivered",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)

	return true, nil
}

// emitDeliveryKPI records the elapsed-days KPI for a delivered order. When
// no processing-entry timestamp was ever logged the KPI is skipped without
// failing the closure.
func (s *ReceptionCompletionService) emitDeliveryKPI(ctx context.Context, order *procurement.PurchaseOrder) error {
	entered, err := s.auditLog.FindEarliest(ctx, audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("no processing-entry timestamp, skipping delivery KPI",
				zap.String("order_id", order.ID.String()),
			)
			return nil
		}
		return err
	}

	exists, err := s.kpis.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	record, err := audit.NewDeliveryKPIRecord(
		order.ID,
		entered.CreatedAt,
		*order.DeliveredAt,
		order.CollectionMethod,
		order.DeliveryResponsibility,
	)
	if err != nil {
		return err
	}

	return s.kpis.Save(ctx, record)
}
