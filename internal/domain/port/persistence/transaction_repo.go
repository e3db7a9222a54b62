package persistence

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// TransactionRepository defines the durable storage operations for payment
// transactions. Implementations must serialize updates per gateway id: two
// concurrent UpdateStatus calls for the same transaction must not interleave
// so that an older status overwrites a newer one.
type TransactionRepository interface {
	// Create persists a new transaction and assigns identity and timestamps.
	//
	// Possible errors:
	// - ErrDuplicateTransaction: a transaction with the same gateway id exists
	// - ErrStorage: the write failed
	Create(ctx context.Context, txn *entity.Transaction) error

	// GetByGatewayID retrieves a transaction by the provider's transaction id.
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStorage
	GetByGatewayID(ctx context.Context, gatewayID string) (*entity.Transaction, error)

	// GetByExternalID retrieves a transaction by the caller-generated
	// correlation token.
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStorage
	GetByExternalID(ctx context.Context, externalID string) (*entity.Transaction, error)

	// UpdateStatus writes a new status, optionally patching payment data in
	// the same write. Repeating an identical write is not an error; the
	// updated transaction is returned either way.
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrStorage
	UpdateStatus(ctx context.Context, gatewayID string, status entity.TransactionStatus, patch *entity.PaymentData) (*entity.Transaction, error)
}
