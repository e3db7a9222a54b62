package lifecycle

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
)

// Refund asks the gateway to return the funds and, on success, writes the
// refunded status unconditionally. The prior status is caller-asserted and
// deliberately not re-validated here; the transition bypasses the lattice
// guard that ApplyStatusUpdate enforces.
func (e *Engine) Refund(ctx context.Context, gatewayID string) (*entity.Transaction, error) {
	ok, err := e.gateway.Refund(ctx, gatewayID)
	if err != nil {
		e.logger.Error("Gateway refund call failed", map[string]any{
			"gateway_id": gatewayID,
			"error":      err.Error(),
		})
		return nil, err
	}
	if !ok {
		return nil, errs.NewGatewayError(e.gateway.Provider(), "refund", gatewayID,
			"provider declined the refund", errs.ErrGatewayRejected)
	}

	txn, err := e.transactions.UpdateStatus(ctx, gatewayID, entity.StatusRefunded, nil)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Transaction refunded", map[string]any{
		"gateway_id": gatewayID,
		"amount":     txn.Amount,
	})
	return txn, nil
}
