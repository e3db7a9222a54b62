package lifecycle

import (
	"context"
	"errors"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
)

// ApplyStatusUpdate reconciles one asynchronous status report against the
// stored transaction. Both webhook ingestion and the polling fallback call
// this and nothing else, so business rules have exactly one home.
//
// The status lattice (pending < paid|failed|cancelled < refunded) makes a
// stale or repeated report a safe no-op: a poller running behind an
// already-applied webhook can never regress the stored status. A report for
// an unknown gateway id returns ErrTransactionNotFound without fabricating a
// record.
func (e *Engine) ApplyStatusUpdate(ctx context.Context, gatewayID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	if !entity.IsValidStatus(status) {
		e.logger.Warn("Ignoring unknown status report", map[string]any{
			"gateway_id": gatewayID,
			"status":     string(status),
		})
		status = entity.StatusPending
	}

	txn, err := e.transactions.GetByGatewayID(ctx, gatewayID)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			e.logger.Warn("Status report for unknown transaction", map[string]any{
				"gateway_id": gatewayID,
				"status":     string(status),
			})
		}
		return nil, err
	}

	if !entity.CanTransition(txn.Status, status) {
		if txn.Status != status {
			e.logger.Warn("Out-of-order status report ignored", map[string]any{
				"gateway_id": gatewayID,
				"current":    string(txn.Status),
				"reported":   string(status),
			})
		}
		return txn, nil
	}

	updated, err := e.transactions.UpdateStatus(ctx, gatewayID, status, nil)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Transaction status updated", map[string]any{
		"gateway_id": gatewayID,
		"from":       string(txn.Status),
		"to":         string(status),
	})

	switch status {
	case entity.StatusPaid:
		if err := e.activateSubscription(ctx, updated); err != nil {
			return nil, err
		}
	case entity.StatusFailed, entity.StatusCancelled:
		if err := e.notifier.PaymentFailed(ctx, updated); err != nil {
			// Notification is best effort; the transition itself stands.
			e.logger.Error("Failed-payment notification errored", map[string]any{
				"gateway_id": gatewayID,
				"error":      err.Error(),
			})
		}
	}

	return updated, nil
}

// activateSubscription creates the access grant for a paid transaction,
// exactly once. Transactions without an associated user pay anonymously and
// produce no subscription record.
func (e *Engine) activateSubscription(ctx context.Context, txn *entity.Transaction) error {
	if txn.UserID == nil {
		e.logger.Debug("Paid transaction has no user, skipping subscription", map[string]any{
			"gateway_id": txn.GatewayID,
		})
		return nil
	}

	existing, err := e.subscriptions.GetByTransactionID(ctx, txn.ID)
	if err != nil && !errors.Is(err, errs.ErrSubscriptionNotFound) {
		return err
	}
	if existing != nil {
		e.logger.Debug("Transaction already produced a subscription", map[string]any{
			"gateway_id":      txn.GatewayID,
			"subscription_id": existing.ID,
		})
		return nil
	}

	sub, recognized := entity.NewSubscription(txn, e.timeProvider)
	if !recognized {
		e.logger.Warn("Unmapped plan code, defaulting to monthly period", map[string]any{
			"gateway_id": txn.GatewayID,
			"plan":       txn.PlanCode,
		})
	}

	if err := e.subscriptions.Create(ctx, sub); err != nil {
		return err
	}

	e.logger.Info("Subscription activated", map[string]any{
		"gateway_id": txn.GatewayID,
		"user_id":    sub.UserID,
		"plan":       sub.PlanCode,
		"ends_at":    sub.EndsAt,
	})
	return nil
}
