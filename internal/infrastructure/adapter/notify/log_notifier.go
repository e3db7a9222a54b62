package notify

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	"github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/notify"
)

// LogNotifier is the notification stub for failed payments: it records the
// failure in the structured log and nothing more. A real deployment would
// swap in an email or messaging implementation behind the same port.
type LogNotifier struct {
	logger core.Logger
}

// NewLogNotifier creates the logging notification stub
func NewLogNotifier(logger core.Logger) notify.PaymentNotifier {
	return &LogNotifier{logger: logger}
}

// PaymentFailed logs the failed or cancelled payment
func (n *LogNotifier) PaymentFailed(_ context.Context, txn *entity.Transaction) error {
	n.logger.Info("Payment did not complete", map[string]any{
		"gateway_id": txn.GatewayID,
		"status":     string(txn.Status),
		"plan":       txn.PlanCode,
		"amount":     txn.Amount,
		"email":      txn.Buyer.Email,
	})
	return nil
}
