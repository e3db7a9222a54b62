package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTransaction runs a checkout so the store holds one pending transaction
func seedTransaction(t *testing.T, engine *Engine, gatewayID string, form *entity.CheckoutForm) *entity.Transaction {
	t.Helper()
	txn, err := engine.Begin(context.Background(), form, "")
	require.NoError(t, err)
	require.Equal(t, gatewayID, txn.GatewayID)
	return txn
}

func seededEngine(t *testing.T, gatewayID string, form *entity.CheckoutForm) (*Engine, *memory.Store, *recordingNotifier, *entity.Transaction) {
	t.Helper()
	gateway := &fakeGateway{
		createFunc: func(context.Context, gw.CreateRequest) (*gw.CreateResult, error) {
			return &gw.CreateResult{GatewayID: gatewayID}, nil
		},
	}
	engine, store, notifier, _ := newTestEngine(gateway)
	txn := seedTransaction(t, engine, gatewayID, form)
	return engine, store, notifier, txn
}

func TestApplyStatusUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("paid activates the subscription", func(t *testing.T) {
		engine, store, _, txn := seededEngine(t, "gw-1", validForm())

		updated, err := engine.ApplyStatusUpdate(ctx, "gw-1", entity.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, updated.Status)

		sub, err := store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.SubscriptionActive, sub.Status)
		assert.Equal(t, entity.PlanPremium, sub.PlanCode)
		assert.Equal(t, sub.StartsAt.AddDate(0, 1, 0), sub.EndsAt)

		active, err := store.Subscriptions().GetActiveByUserID(ctx, sub.UserID)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, active.ID)
	})

	t.Run("annual plan subscription runs a year", func(t *testing.T) {
		form := validForm()
		form.PlanCode = entity.PlanAnnual
		engine, store, _, txn := seededEngine(t, "gw-2", form)

		_, err := engine.ApplyStatusUpdate(ctx, "gw-2", entity.StatusPaid)
		require.NoError(t, err)

		sub, err := store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, sub.StartsAt.AddDate(1, 0, 0), sub.EndsAt)
		assert.InDelta(t, 365, sub.EndsAt.Sub(sub.StartsAt).Hours()/24, 1)
	})

	t.Run("repeated paid report activates exactly one subscription", func(t *testing.T) {
		engine, store, _, txn := seededEngine(t, "gw-3", validForm())

		_, err := engine.ApplyStatusUpdate(ctx, "gw-3", entity.StatusPaid)
		require.NoError(t, err)
		first, err := store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		require.NoError(t, err)

		// A duplicate delivery of the same notification
		updated, err := engine.ApplyStatusUpdate(ctx, "gw-3", entity.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, updated.Status)

		second, err := store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("stale pending report after paid is a no-op", func(t *testing.T) {
		engine, _, _, _ := seededEngine(t, "gw-4", validForm())

		_, err := engine.ApplyStatusUpdate(ctx, "gw-4", entity.StatusPaid)
		require.NoError(t, err)

		// A slow poller reporting the state it saw before the webhook landed
		updated, err := engine.ApplyStatusUpdate(ctx, "gw-4", entity.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, updated.Status)
	})

	t.Run("failed notifies and creates no subscription", func(t *testing.T) {
		engine, store, notifier, txn := seededEngine(t, "gw-5", validForm())

		updated, err := engine.ApplyStatusUpdate(ctx, "gw-5", entity.StatusFailed)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, updated.Status)
		assert.Equal(t, []string{"gw-5"}, notifier.failed)

		_, err = store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		assert.ErrorIs(t, err, errs.ErrSubscriptionNotFound)
	})

	t.Run("cancelled notifies as a failure", func(t *testing.T) {
		engine, _, notifier, _ := seededEngine(t, "gw-6", validForm())

		_, err := engine.ApplyStatusUpdate(ctx, "gw-6", entity.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, []string{"gw-6"}, notifier.failed)
	})

	t.Run("notifier error does not undo the transition", func(t *testing.T) {
		engine, store, notifier, _ := seededEngine(t, "gw-7", validForm())
		notifier.err = errors.New("smtp down")

		updated, err := engine.ApplyStatusUpdate(ctx, "gw-7", entity.StatusFailed)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, updated.Status)

		stored, err := store.Transactions().GetByGatewayID(ctx, "gw-7")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, stored.Status)
	})

	t.Run("paid transaction without a user produces no subscription", func(t *testing.T) {
		form := validForm()
		form.UserID = nil
		engine, store, _, txn := seededEngine(t, "gw-8", form)

		updated, err := engine.ApplyStatusUpdate(ctx, "gw-8", entity.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, updated.Status)

		_, err = store.Subscriptions().GetByTransactionID(ctx, txn.ID)
		assert.ErrorIs(t, err, errs.ErrSubscriptionNotFound)
	})

	t.Run("unknown gateway id returns not found", func(t *testing.T) {
		engine, _, _, _ := seededEngine(t, "gw-9", validForm())

		txn, err := engine.ApplyStatusUpdate(ctx, "gw-missing", entity.StatusPaid)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("unrecognized status is treated as pending", func(t *testing.T) {
		engine, _, _, _ := seededEngine(t, "gw-10", validForm())

		updated, err := engine.ApplyStatusUpdate(ctx, "gw-10", entity.TransactionStatus("EXOTIC_STATE"))
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, updated.Status)
	})

	t.Run("refund report only lands on a paid transaction", func(t *testing.T) {
		engine, _, _, _ := seededEngine(t, "gw-11", validForm())

		// Still pending, so refunded is unreachable
		updated, err := engine.ApplyStatusUpdate(ctx, "gw-11", entity.StatusRefunded)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, updated.Status)

		_, err = engine.ApplyStatusUpdate(ctx, "gw-11", entity.StatusPaid)
		require.NoError(t, err)

		updated, err = engine.ApplyStatusUpdate(ctx, "gw-11", entity.StatusRefunded)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusRefunded, updated.Status)
	})
}
