package lifecycle

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// CheckStatus is the polling fallback the presentation layer uses when
// webhook delivery is delayed. It asks the gateway for the live status and
// feeds the answer through ApplyStatusUpdate, the same reconciliation path
// the webhook uses.
func (e *Engine) CheckStatus(ctx context.Context, gatewayID string) (*entity.Transaction, error) {
	status, err := e.gateway.Status(ctx, gatewayID)
	if err != nil {
		e.logger.Error("Gateway status lookup failed", map[string]any{
			"gateway_id": gatewayID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return e.ApplyStatusUpdate(ctx, gatewayID, status)
}
