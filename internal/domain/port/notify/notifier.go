package notify

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// PaymentNotifier is the hook invoked when a transaction reaches failed or
// cancelled. It has no subscription side effects; implementations typically
// alert operations or the buyer. Errors are logged by the caller, never
// propagated into the status transition.
type PaymentNotifier interface {
	PaymentFailed(ctx context.Context, txn *entity.Transaction) error
}
