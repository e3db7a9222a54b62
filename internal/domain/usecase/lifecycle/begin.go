package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
)

// Begin validates the checkout form, opens a charge at the gateway and
// persists the resulting transaction in pending status. Nothing is persisted
// when the gateway call fails, so a gateway error leaves no half-written
// record behind. The returned transaction carries the payment code for the
// presentation layer.
//
// externalReference is the caller's correlation token; when empty a fresh
// UUID is generated so the gateway side can always be matched back.
func (e *Engine) Begin(ctx context.Context, form *entity.CheckoutForm, externalReference string) (*entity.Transaction, error) {
	if err := form.Validate(); err != nil {
		e.logger.Warn("Checkout form rejected", map[string]any{
			"plan":  form.PlanCode,
			"error": err.Error(),
		})
		return nil, err
	}

	if externalReference == "" {
		externalReference = uuid.NewString()
	}

	result, err := e.gateway.Create(ctx, gw.CreateRequest{
		Buyer: entity.Buyer{
			Name:     form.Name,
			Email:    form.Email,
			Document: form.NormalizedDocument(),
			Phone:    form.NormalizedPhone(),
		},
		AmountMinorUnits:  form.Price,
		ExternalReference: externalReference,
	})
	if err != nil {
		e.logger.Error("Gateway charge creation failed", map[string]any{
			"external_id": externalReference,
			"plan":        form.PlanCode,
			"amount":      form.Price,
			"error":       err.Error(),
		})
		return nil, err
	}

	paymentData := result.PaymentData
	txn := entity.NewTransaction(form, result.GatewayID, externalReference, &paymentData, e.timeProvider)

	if err := e.transactions.Create(ctx, txn); err != nil {
		// The gateway-side charge still exists at this point; it cannot be
		// compensated here because the provider has no cancel-unconfirmed
		// call. Reconciliation of such orphans is a runbook concern.
		e.logger.Error("Failed to persist transaction after gateway creation", map[string]any{
			"gateway_id":  result.GatewayID,
			"external_id": externalReference,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("%w: persisting transaction %s: %s", errs.ErrStorage, result.GatewayID, err.Error())
	}

	e.logger.Info("Transaction created", map[string]any{
		"gateway_id":  txn.GatewayID,
		"external_id": txn.ExternalID,
		"plan":        txn.PlanCode,
		"amount":      txn.Amount,
	})
	return txn, nil
}
