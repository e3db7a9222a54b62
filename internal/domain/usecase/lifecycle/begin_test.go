package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/logger"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *entity.CheckoutForm {
	userID := uint64(1)
	return &entity.CheckoutForm{
		Name:      "Ana Silva",
		Email:     "ana@example.com",
		Document:  "529.982.247-25",
		Phone:     "(11) 98765-4321",
		PlanCode:  entity.PlanPremium,
		PlanTitle: "Premium Family",
		Price:     29900,
		UserID:    &userID,
	}
}

func newTestEngine(gateway *fakeGateway) (*Engine, *memory.Store, *recordingNotifier, *fixedClock) {
	clock := &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clock)
	notifier := &recordingNotifier{}
	engine := NewEngine(
		store.Transactions(),
		store.Subscriptions(),
		gateway,
		notifier,
		clock,
		logger.NewNoopLogger(),
	)
	return engine, store, notifier, clock
}

func TestBegin(t *testing.T) {
	ctx := context.Background()

	t.Run("successful checkout persists a pending transaction", func(t *testing.T) {
		gateway := &fakeGateway{
			createFunc: func(_ context.Context, req gw.CreateRequest) (*gw.CreateResult, error) {
				assert.Equal(t, int64(29900), req.AmountMinorUnits)
				assert.Equal(t, "52998224725", req.Buyer.Document)
				assert.NotEmpty(t, req.ExternalReference)
				return &gw.CreateResult{
					GatewayID:   "gw-1",
					PaymentData: entity.PaymentData{Code: "pix-copy-paste"},
				}, nil
			},
		}
		engine, store, _, _ := newTestEngine(gateway)

		txn, err := engine.Begin(ctx, validForm(), "")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, txn.Status)
		assert.Equal(t, "gw-1", txn.GatewayID)
		assert.NotEmpty(t, txn.ExternalID, "an external reference is generated when the caller passes none")
		assert.Equal(t, "pix-copy-paste", txn.PaymentCode())

		stored, err := store.Transactions().GetByGatewayID(ctx, "gw-1")
		require.NoError(t, err)
		assert.Equal(t, txn.ID, stored.ID)
	})

	t.Run("caller-provided external reference is preserved", func(t *testing.T) {
		gateway := &fakeGateway{
			createFunc: func(_ context.Context, req gw.CreateRequest) (*gw.CreateResult, error) {
				assert.Equal(t, "order-77", req.ExternalReference)
				return &gw.CreateResult{GatewayID: "gw-2"}, nil
			},
		}
		engine, store, _, _ := newTestEngine(gateway)

		txn, err := engine.Begin(ctx, validForm(), "order-77")
		require.NoError(t, err)
		assert.Equal(t, "order-77", txn.ExternalID)

		stored, err := store.Transactions().GetByExternalID(ctx, "order-77")
		require.NoError(t, err)
		assert.Equal(t, txn.GatewayID, stored.GatewayID)
	})

	t.Run("invalid form never reaches the gateway", func(t *testing.T) {
		gateway := &fakeGateway{}
		engine, _, _, _ := newTestEngine(gateway)

		form := validForm()
		form.Email = "not-an-email"
		form.Price = 0

		txn, err := engine.Begin(ctx, form, "")
		require.Error(t, err)
		assert.Nil(t, txn)
		assert.True(t, errs.IsValidationError(err))

		var validationErr *errs.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Contains(t, validationErr.Fields, "email")
		assert.Contains(t, validationErr.Fields, "price")
		assert.Zero(t, gateway.createCalls)
	})

	t.Run("gateway failure persists nothing", func(t *testing.T) {
		gateway := &fakeGateway{
			createFunc: func(context.Context, gw.CreateRequest) (*gw.CreateResult, error) {
				return nil, errs.NewGatewayError("fake", "create", "", "timeout", errs.ErrGatewayUnreachable)
			},
		}
		engine, store, _, _ := newTestEngine(gateway)

		txn, err := engine.Begin(ctx, validForm(), "order-88")
		require.Error(t, err)
		assert.Nil(t, txn)
		assert.True(t, errs.IsGatewayError(err))

		_, err = store.Transactions().GetByExternalID(ctx, "order-88")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("store failure surfaces as a storage error", func(t *testing.T) {
		gateway := &fakeGateway{
			createFunc: func(context.Context, gw.CreateRequest) (*gw.CreateResult, error) {
				// The same gateway id twice trips the uniqueness check on the
				// second insert.
				return &gw.CreateResult{GatewayID: "gw-dup"}, nil
			},
		}
		engine, _, _, _ := newTestEngine(gateway)

		_, err := engine.Begin(ctx, validForm(), "")
		require.NoError(t, err)

		txn, err := engine.Begin(ctx, validForm(), "")
		require.Error(t, err)
		assert.Nil(t, txn)
		assert.True(t, errs.IsStorageError(err))
	})
}
