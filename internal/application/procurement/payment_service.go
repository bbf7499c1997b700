package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentService registers and reverses payment ledger entries. Every ledger
// mutation and the liquidation recompute it triggers run in one transaction,
// so amount_paid never drifts from the ledger sum.
type PaymentService struct {
	scope          reconciliation.TransactionScope
	chain          *reconciliation.Orchestrator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope reconciliation.TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		scope:  scope,
		chain:  reconciliation.NewOrchestrator(scope, logger),
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RegisterPayment appends a FULL or ADVANCE entry to an order's payment
// ledger. A missing payment source falls back to the UNSPECIFIED catalog
// entry rather than failing the registration.
func (s *PaymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*PaymentEntryResponse, error) {
	var entry *procurement.PaymentEntry
	var order *procurement.PurchaseOrder

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		var err error
		order, err = repos.PurchaseOrders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		sourceID, err := s.resolveSource(ctx, repos.PaymentSources(), req.PaymentSourceID)
		if err != nil {
			return err
		}

		entry, err = procurement.NewPaymentEntry(order.ID, req.Amount, procurement.PaymentKind(req.Kind), sourceID, req.Reference)
		if err != nil {
			return err
		}
		if err := repos.PaymentEntries().Save(ctx, entry); err != nil {
			return err
		}

		return s.chain.PaymentChanged(ctx, repos, order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, procurement.NewPaymentRegisteredEvent(entry))

	s.logger.Info("payment registered",
		zap.String("order_id", order.ID.String()),
		zap.String("amount", entry.Amount.String()),
		zap.String("kind", entry.Kind.String()),
	)

	response := ToPaymentEntryResponse(entry)
	return &response, nil
}

// ReversePayment appends the offsetting entry for a registered payment.
// A payment can be reversed at most once, and reversals themselves cannot
// be reversed.
func (s *PaymentService) ReversePayment(ctx context.Context, req ReversePaymentRequest) (*PaymentEntryResponse, error) {
	var reversal *procurement.PaymentEntry
	var order *procurement.PurchaseOrder

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		original, err := repos.PaymentEntries().FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}

		existing, err := repos.PaymentEntries().FindReversalOf(ctx, original.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_REVERSED", "Payment already has a reversal")
		}

		reversal, err = procurement.NewReversalEntry(original, req.Reference)
		if err != nil {
			return err
		}
		if err := repos.PaymentEntries().Save(ctx, reversal); err != nil {
			return err
		}

		order, err = repos.PurchaseOrders().FindByID(ctx, original.PurchaseOrderID)
		if err != nil {
			return err
		}

		return s.chain.PaymentChanged(ctx, repos, order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, procurement.NewPaymentReversedEvent(reversal))

	s.logger.Info("payment reversed",
		zap.String("order_id", order.ID.String()),
		zap.String("original_payment_id", req.PaymentID.String()),
	)

	response := ToPaymentEntryResponse(reversal)
	return &response, nil
}

// CreatePaymentSource adds a catalog entry for payments to reference
func (s *PaymentService) CreatePaymentSource(ctx context.Context, req CreatePaymentSourceRequest) (*PaymentSourceResponse, error) {
	var source *procurement.PaymentSource

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		existing, err := repos.PaymentSources().FindByName(ctx, req.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "Payment source name already exists")
		}

		source, err = procurement.NewPaymentSource(req.Name, procurement.PaymentSourceKind(req.Kind))
		if err != nil {
			return err
		}
		return repos.PaymentSources().Save(ctx, source)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentSourceResponse(source)
	return &response, nil
}

// resolveSource validates the declared source or falls back to UNSPECIFIED
func (s *PaymentService) resolveSource(ctx context.Context, sources procurement.PaymentSourceRepository, declared *uuid.UUID) (uuid.UUID, error) {
	if declared == nil {
		fallback, err := sources.EnsureFallback(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		return fallback.ID, nil
	}

	source, err := sources.FindByID(ctx, *declared)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("INVALID_PAYMENT_SOURCE", "Payment source does not exist")
		}
		return uuid.Nil, err
	}
	if !source.Active {
		return uuid.Nil, shared.NewDomainError("INVALID_PAYMENT_SOURCE", "Payment source is inactive")
	}
	return source.ID, nil
}

func (s *PaymentService) publishEvent(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish domain event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
