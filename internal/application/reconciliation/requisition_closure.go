package reconciliation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RequisitionClosureService decides whether a requisition can close by
// aggregating state across every order and line derived from it. The
// evaluation holds a row-level exclusive lock on the requisition so two
// concurrent order completions cannot both observe "not yet closeable", or
// race each other to close.
type RequisitionClosureService struct {
	requisitions requisition.Repository
	orders       procurement.PurchaseOrderRepository
	auditLog     audit.LogRepository
	logger       *zap.Logger
}

// NewRequisitionClosureService creates a new RequisitionClosureService
func NewRequisitionClosureService(
	requisitions requisition.Repository,
	orders procurement.PurchaseOrderRepository,
	auditLog audit.LogRepository,
	logger *zap.Logger,
) *RequisitionClosureService {
	return &RequisitionClosureService{
		requisitions: requisitions,
		orders:       orders,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// MaybeCloseRequisition evaluates the closure preconditions in order,
// short-circuiting on the first failure, and closes the requisition when all
// pass. Returns whether a closure occurred. A false return is an expected
// negative outcome, not an error.
func (s *RequisitionClosureService) MaybeCloseRequisition(ctx context.Context, requisitionID uuid.UUID) (bool, error) {
	req, err := s.requisitions.FindByIDForUpdate(ctx, requisitionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	// 1. Already resolved requisitions never re-close.
	if req.Status.IsClosed() {
		return false, nil
	}

	orders, err := s.orders.FindByRequisition(ctx, requisitionID)
	if err != nil {
		return false, err
	}

	// 2. A requisition nothing was ever ordered against stays open.
	if len(orders) == 0 {
		return false, nil
	}

	// 3. Every selected sourcing option with a positive quoted quantity must
	// have produced an order line; otherwise something approved to buy never
	// became an order.
	coveredLines := make(map[uuid.UUID]struct{})
	for i := range orders {
		for _, line := range orders[i].Lines {
			if line.RequisitionLineID != nil {
				coveredLines[*line.RequisitionLineID] = struct{}{}
			}
		}
	}
	for _, option := range req.SelectedOptions() {
		if _, ok := coveredLines[option.LineID]; !ok {
			return false, nil
		}
	}

	// 4. All referencing orders must be resolved.
	for i := range orders {
		if !orders[i].OperationalStatus.IsTerminal() {
			return false, nil
		}
	}

	// 5. Every requisition line must be fully received across all order
	// lines derived from it.
	received := make(map[uuid.UUID]decimal.Decimal)
	for i := range orders {
		for _, line := range orders[i].Lines {
			if line.RequisitionLineID == nil {
				continue
			}
			received[*line.RequisitionLineID] = received[*line.RequisitionLineID].Add(line.QuantityReceived)
		}
	}
	for _, line := range req.Lines {
		if received[line.ID].LessThan(line.RequestedQuantity) {
			return false, nil
		}
	}

	if !req.Close() {
		return false, nil
	}
	if err := s.requisitions.Save(ctx, req); err != nil {
		return false, err
	}

	entry, err := audit.NewLogEntry(
		audit.EntityTypeRequisition,
		req.ID,
		audit.ActionRequisitionClosed,
		"Requisition auto-closed: all orders resolved and lines fully received",
	)
	if err != nil {
		return false, err
	}
	if err := s.auditLog.Append(ctx, entry); err != nil {
		return false, err
	}

	s.logger.Info("requisition auto-closed",
		zap.String("requisition_id", req.ID.String()),
		zap.String("number", req.Number),
	)

	return true, nil
}
