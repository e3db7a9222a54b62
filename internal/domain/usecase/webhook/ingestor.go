package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
)

// Notice is a provider notification normalized to what the lifecycle engine
// needs: which transaction, which status, and what the provider called the
// event.
type Notice struct {
	EventType string
	GatewayID string
	Status    entity.TransactionStatus
}

// NoticeParser turns one provider's raw webhook payload into a Notice
type NoticeParser func(raw []byte) (Notice, error)

// StatusApplier is the lifecycle engine entry point the ingestor feeds.
// Webhook delivery and the polling fallback share this single function.
type StatusApplier interface {
	ApplyStatusUpdate(ctx context.Context, gatewayID string, status entity.TransactionStatus) (*entity.Transaction, error)
}

// Ingestor receives asynchronous gateway notifications, records them durably
// before any processing, and replays unprocessed records at startup. A crash
// after the durable write but before processing is recovered by the sweep;
// duplicate rows are tolerated because processing is idempotent.
type Ingestor struct {
	events       persistence.WebhookEventRepository
	applier      StatusApplier
	parsers      map[string]NoticeParser
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewIngestor wires the webhook ingestion component. parsers maps the
// provider name used in the webhook route to that provider's payload parser.
func NewIngestor(
	events persistence.WebhookEventRepository,
	applier StatusApplier,
	parsers map[string]NoticeParser,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Ingestor {
	return &Ingestor{
		events:       events,
		applier:      applier,
		parsers:      parsers,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Receive handles one inbound notification. The event row is persisted first;
// only a failure of that durable write is fatal to the request. Processing
// failures leave the row unprocessed for the replay sweep and are returned to
// the caller for logging, alongside the recorded event.
func (i *Ingestor) Receive(ctx context.Context, provider string, raw []byte) (*entity.WebhookEvent, error) {
	notice, parseErr := i.parse(provider, raw)
	if parseErr != nil {
		// Record the payload anyway; an unreadable notification is still part
		// of the audit trail.
		notice = Notice{EventType: "unknown"}
		i.logger.Warn("Unparseable webhook payload", map[string]any{
			"provider": provider,
			"error":    parseErr.Error(),
		})
	}

	event := entity.NewWebhookEvent(provider, notice.EventType, notice.GatewayID, raw, i.timeProvider)
	if err := i.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: recording webhook event: %s", errs.ErrStorage, err.Error())
	}

	if parseErr != nil {
		return event, nil
	}

	if _, err := i.applier.ApplyStatusUpdate(ctx, notice.GatewayID, notice.Status); err != nil {
		i.logger.Error("Webhook processing failed, event left unprocessed", map[string]any{
			"provider":   provider,
			"event_id":   event.ID,
			"gateway_id": notice.GatewayID,
			"error":      err.Error(),
		})
		return event, err
	}

	if err := i.events.MarkProcessed(ctx, event.ID); err != nil {
		// The transition itself succeeded; the sweep will re-apply harmlessly.
		i.logger.Error("Failed to mark webhook event processed", map[string]any{
			"event_id": event.ID,
			"error":    err.Error(),
		})
		return event, nil
	}
	event.Processed = true
	return event, nil
}

// Replay re-runs every event not yet marked processed through the same
// handler the live path uses. One poisoned event never blocks the rest; each
// failure is logged and skipped. Intended to run once at process start, after
// a short grace delay so dependencies finish initializing.
func (i *Ingestor) Replay(ctx context.Context) error {
	events, err := i.events.ListUnprocessed(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing unprocessed webhook events: %s", errs.ErrStorage, err.Error())
	}
	if len(events) == 0 {
		return nil
	}

	i.logger.Info("Replaying unprocessed webhook events", map[string]any{
		"count": len(events),
	})

	for _, event := range events {
		notice, err := i.parse(event.Provider, event.RawPayload)
		if err != nil {
			i.logger.Warn("Skipping unparseable stored webhook event", map[string]any{
				"event_id": event.ID,
				"provider": event.Provider,
				"error":    err.Error(),
			})
			continue
		}

		if _, err := i.applier.ApplyStatusUpdate(ctx, notice.GatewayID, notice.Status); err != nil {
			i.logger.Error("Webhook replay failed for event", map[string]any{
				"event_id":   event.ID,
				"gateway_id": notice.GatewayID,
				"error":      err.Error(),
			})
			continue
		}

		if err := i.events.MarkProcessed(ctx, event.ID); err != nil {
			i.logger.Error("Failed to mark replayed event processed", map[string]any{
				"event_id": event.ID,
				"error":    err.Error(),
			})
		}
	}
	return nil
}

// ReplayAfter sleeps for the configured grace delay and then runs Replay.
// Meant to be launched as a goroutine from main.
func (i *Ingestor) ReplayAfter(ctx context.Context, grace time.Duration) {
	i.timeProvider.Sleep(grace)
	if err := i.Replay(ctx); err != nil {
		i.logger.Error("Webhook replay sweep failed", map[string]any{
			"error": err.Error(),
		})
	}
}

func (i *Ingestor) parse(provider string, raw []byte) (Notice, error) {
	parser, ok := i.parsers[provider]
	if !ok {
		return Notice{}, errors.New("no parser registered for provider " + provider)
	}
	return parser(raw)
}
