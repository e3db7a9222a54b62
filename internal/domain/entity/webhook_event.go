package entity

import (
	"time"

	tport "github.com/perna2k6/pernateste/internal/domain/port/core"
)

// WebhookEvent is the durable record of one inbound gateway notification,
// persisted before any processing is attempted so a crash between receipt and
// processing is recoverable by the replay sweep. Raw payload is preserved
// verbatim for replay and audit; duplicates are tolerated because processing
// is idempotent.
type WebhookEvent struct {
	ID         uint64
	Provider   string
	EventType  string
	GatewayID  string // the gateway transaction id the event refers to
	RawPayload []byte
	Processed  bool
	CreatedAt  time.Time
}

// NewWebhookEvent records an inbound notification prior to processing
func NewWebhookEvent(provider, eventType, gatewayID string, rawPayload []byte, timeProvider tport.TimeProvider) *WebhookEvent {
	return &WebhookEvent{
		Provider:   provider,
		EventType:  eventType,
		GatewayID:  gatewayID,
		RawPayload: rawPayload,
		Processed:  false,
		CreatedAt:  timeProvider.Now(),
	}
}
