package persistence

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// WebhookEventRepository defines storage for inbound gateway notifications.
// Events are written before processing so the replay sweep can recover from a
// crash between receipt and processing.
type WebhookEventRepository interface {
	// Create persists an event record immediately on receipt.
	//
	// Possible errors:
	// - ErrStorage
	Create(ctx context.Context, event *entity.WebhookEvent) error

	// ListUnprocessed returns all events whose processed flag is still unset,
	// oldest first.
	//
	// Possible errors:
	// - ErrStorage
	ListUnprocessed(ctx context.Context) ([]*entity.WebhookEvent, error)

	// MarkProcessed flips the processed flag after the lifecycle engine's
	// transition logic completed without error.
	//
	// Possible errors:
	// - ErrStorage
	MarkProcessed(ctx context.Context, id uint64) error
}
