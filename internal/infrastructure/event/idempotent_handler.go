package event

import (
	"context"

	"github.com/procurement/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotentHandler decorates an EventHandler with event-id deduplication.
// The bus may redeliver an event (retried request, backfill overlapping a
// live mutation); the decorated handler sees it exactly once per TTL window.
type IdempotentHandler struct {
	inner  shared.EventHandler
	store  shared.IdempotencyStore
	config shared.IdempotencyConfig
	logger *zap.Logger
}

// IdempotentHandlerOption configures an IdempotentHandler
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig overrides the default dedupe TTL and enablement
func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.config = config
	}
}

// NewIdempotentHandler wraps a handler with deduplication backed by the store
func NewIdempotentHandler(
	inner shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		inner:  inner,
		store:  store,
		config: shared.DefaultIdempotencyConfig(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes delegates to the wrapped handler's subscription declaration
func (h *IdempotentHandler) EventTypes() []string {
	return h.inner.EventTypes()
}

// Handle marks the event id processed before delegating. A store failure is
// logged and processing continues: duplicate handling is preferable to a
// dropped event. The mark is not removed on handler failure, so a failed
// event retries only after the TTL expires.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.inner.Handle(ctx, event)
	}

	eventID := event.EventID().String()
	firstDelivery, err := h.store.MarkProcessed(ctx, eventID, h.config.TTL)
	switch {
	case err != nil:
		h.logger.Warn("idempotency check failed, processing anyway",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	case !firstDelivery:
		h.logger.Debug("duplicate event skipped",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.inner.Handle(ctx, event); err != nil {
		h.logger.Error("event handler failed",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Unwrap returns the decorated handler
func (h *IdempotentHandler) Unwrap() shared.EventHandler {
	return h.inner
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
