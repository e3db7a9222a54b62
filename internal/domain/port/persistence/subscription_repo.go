package persistence

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// SubscriptionRepository defines storage for access grants derived from paid
// transactions.
type SubscriptionRepository interface {
	// Create persists a new subscription.
	//
	// Possible errors:
	// - ErrStorage: the write failed, including a second insert for the same
	//   source transaction hitting the unique index
	Create(ctx context.Context, sub *entity.Subscription) error

	// GetActiveByUserID returns the user's current subscription: status
	// active and end strictly in the future. Expired-but-unswept rows are
	// never returned.
	//
	// Possible errors:
	// - ErrSubscriptionNotFound
	// - ErrStorage
	GetActiveByUserID(ctx context.Context, userID uint64) (*entity.Subscription, error)

	// GetByTransactionID returns the subscription a transaction already
	// produced, if any. Used as the idempotency check before activation.
	//
	// Possible errors:
	// - ErrSubscriptionNotFound
	// - ErrStorage
	GetByTransactionID(ctx context.Context, transactionID uint64) (*entity.Subscription, error)
}
