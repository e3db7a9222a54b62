package lifecycle

import (
	"context"
	"testing"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
	"github.com/perna2k6/pernateste/internal/domain/usecase/webhook"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/gateway/suitpay"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnnualCheckoutFlow walks one full happy path: checkout opens a pending
// charge, the provider's webhook reports the payment, and the buyer ends up
// with a year of access.
func TestAnnualCheckoutFlow(t *testing.T) {
	ctx := context.Background()

	gateway := &fakeGateway{
		createFunc: func(_ context.Context, req gw.CreateRequest) (*gw.CreateResult, error) {
			assert.Equal(t, int64(29900), req.AmountMinorUnits)
			return &gw.CreateResult{
				GatewayID:   "sp-annual-1",
				PaymentData: entity.PaymentData{Code: "pix-code"},
			}, nil
		},
	}
	engine, store, _, clock := newTestEngine(gateway)

	ingestor := webhook.NewIngestor(
		store.WebhookEvents(),
		engine,
		map[string]webhook.NoticeParser{suitpay.ProviderName: suitpay.ParseWebhook},
		clock,
		logger.NewNoopLogger(),
	)

	userID := uint64(9)
	form := &entity.CheckoutForm{
		Name:      "Ana Silva",
		Email:     "ana@example.com",
		Document:  "529.982.247-25",
		Phone:     "(11) 98765-4321",
		PlanCode:  entity.PlanAnnual,
		PlanTitle: "Annual All-Access",
		Price:     29900,
		UserID:    &userID,
	}

	txn, err := engine.Begin(ctx, form, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, txn.Status)
	assert.Equal(t, "pix-code", txn.PaymentCode())

	// Provider confirms the payment asynchronously
	event, err := ingestor.Receive(ctx, suitpay.ProviderName,
		[]byte(`{"idTransaction":"sp-annual-1","statusTransaction":"PAID_OUT","typeTransaction":"PIX"}`))
	require.NoError(t, err)
	assert.True(t, event.Processed)

	paid, err := store.Transactions().GetByGatewayID(ctx, "sp-annual-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, paid.Status)

	sub, err := store.Subscriptions().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanAnnual, sub.PlanCode)
	assert.Equal(t, clock.Now().AddDate(1, 0, 0), sub.EndsAt)
	assert.True(t, sub.IsCurrent(clock.Now()))

	// A duplicate delivery of the same confirmation changes nothing
	_, err = ingestor.Receive(ctx, suitpay.ProviderName,
		[]byte(`{"idTransaction":"sp-annual-1","statusTransaction":"PAID_OUT","typeTransaction":"PIX"}`))
	require.NoError(t, err)

	again, err := store.Subscriptions().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, again.ID)
}
