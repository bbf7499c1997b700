package requisition

import (
	"context"
	"fmt"

	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SourcingOptionService replaces the sourcing option set of a requisition.
// The replace and the closure re-evaluation it triggers run in one
// transaction, holding the requisition row lock so a concurrent closure
// cannot interleave.
type SourcingOptionService struct {
	scope          reconciliation.TransactionScope
	chain          *reconciliation.Orchestrator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSourcingOptionService creates a new SourcingOptionService
func NewSourcingOptionService(scope reconciliation.TransactionScope, logger *zap.Logger) *SourcingOptionService {
	return &SourcingOptionService{
		scope:  scope,
		chain:  reconciliation.NewOrchestrator(scope, logger),
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SourcingOptionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ReplaceSourcingOptions swaps the full option set of an open requisition and
// re-evaluates the auto-closure rule. Deselecting the last unfilled commitment
// can close the requisition in the same call.
func (s *SourcingOptionService) ReplaceSourcingOptions(ctx context.Context, req ReplaceSourcingOptionsRequest) (*RequisitionResponse, error) {
	var current *requisition.Requisition
	var closed bool

	err := s.scope.Execute(ctx, func(repos reconciliation.Repositories) error {
		var err error
		current, err = repos.Requisitions().FindByIDForUpdate(ctx, req.RequisitionID)
		if err != nil {
			return err
		}

		if err := current.ClearSourcingOptions(); err != nil {
			return err
		}
		for _, input := range req.Options {
			if _, err := current.AddSourcingOption(input.LineID, input.SupplierID, input.QuotedQuantity, input.QuotedPrice, input.Selected); err != nil {
				return err
			}
		}
		if err := repos.Requisitions().Save(ctx, current); err != nil {
			return err
		}

		entry, err := audit.NewLogEntry(
			audit.EntityTypeRequisition,
			current.ID,
			audit.ActionSourcingOptionsReplaced,
			fmt.Sprintf("%d options, %d selected", len(current.SourcingOptions), len(current.SelectedOptions())),
		)
		if err != nil {
			return err
		}
		if err := repos.AuditLog().Append(ctx, entry); err != nil {
			return err
		}

		closed, err = s.chain.SourcingOptionChanged(ctx, repos, current.ID)
		if err != nil {
			return err
		}
		if closed {
			current, err = repos.Requisitions().FindByID(ctx, current.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, current)

	s.logger.Info("sourcing options replaced",
		zap.String("requisition_id", current.ID.String()),
		zap.Int("options", len(req.Options)),
		zap.Bool("requisition_closed", closed),
	)

	response := ToRequisitionResponse(current)
	return &response, nil
}

func (s *SourcingOptionService) publishEvents(ctx context.Context, req *requisition.Requisition) {
	if s.eventPublisher == nil {
		return
	}
	events := req.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	req.ClearDomainEvents()
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("requisition_id", req.ID.String()),
			zap.Error(err),
		)
	}
}
