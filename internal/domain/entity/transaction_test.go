package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		current TransactionStatus
		next    TransactionStatus
		allowed bool
	}{
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"paid to refunded", StatusPaid, StatusRefunded, true},

		{"pending to pending", StatusPending, StatusPending, false},
		{"paid to paid", StatusPaid, StatusPaid, false},
		{"paid to pending", StatusPaid, StatusPending, false},
		{"failed to pending", StatusFailed, StatusPending, false},
		{"refunded to paid", StatusRefunded, StatusPaid, false},
		{"refunded to pending", StatusRefunded, StatusPending, false},

		// Refunds only follow a payment
		{"pending to refunded", StatusPending, StatusRefunded, false},
		{"failed to refunded", StatusFailed, StatusRefunded, false},
		{"cancelled to refunded", StatusCancelled, StatusRefunded, false},

		// No path between same-rank terminal states
		{"paid to failed", StatusPaid, StatusFailed, false},
		{"paid to cancelled", StatusPaid, StatusCancelled, false},
		{"failed to paid", StatusFailed, StatusPaid, false},
		{"cancelled to paid", StatusCancelled, StatusPaid, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.current, tc.next))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []TransactionStatus{StatusPending, StatusPaid, StatusFailed, StatusCancelled, StatusRefunded} {
		assert.True(t, IsValidStatus(s), string(s))
	}
	assert.False(t, IsValidStatus("PAID_OUT"))
	assert.False(t, IsValidStatus(""))
}

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: fixedTime}

	userID := uint64(42)
	form := &CheckoutForm{
		Name:      "Ana Silva",
		Email:     "ana@example.com",
		Document:  "529.982.247-25",
		Phone:     "(11) 98765-4321",
		PlanCode:  PlanPremium,
		PlanTitle: "Premium Family",
		Price:     29900,
		UserID:    &userID,
	}

	txn := NewTransaction(form, "gw-123", "ext-456", &PaymentData{Code: "pixcode"}, clock)

	assert.Equal(t, "gw-123", txn.GatewayID)
	assert.Equal(t, "ext-456", txn.ExternalID)
	assert.Equal(t, int64(29900), txn.Amount)
	assert.Equal(t, StatusPending, txn.Status)
	assert.Equal(t, MethodPix, txn.Method)
	assert.Equal(t, PlanPremium, txn.PlanCode)
	assert.Equal(t, "Ana Silva", txn.Buyer.Name)
	assert.Equal(t, "52998224725", txn.Buyer.Document, "document is stored digits-only")
	assert.Equal(t, "11987654321", txn.Buyer.Phone, "phone is stored digits-only")
	require.NotNil(t, txn.UserID)
	assert.Equal(t, uint64(42), *txn.UserID)
	assert.Equal(t, fixedTime, txn.CreatedAt)
	assert.Equal(t, fixedTime, txn.UpdatedAt)
	assert.Equal(t, "pixcode", txn.PaymentCode())
}

func TestTransactionIsTerminal(t *testing.T) {
	assert.False(t, (&Transaction{Status: StatusPending}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusPaid}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusFailed}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusRefunded}).IsTerminal())
}

func TestPaymentCode(t *testing.T) {
	assert.Equal(t, "", (&Transaction{}).PaymentCode())
	assert.Equal(t, "abc", (&Transaction{PaymentData: &PaymentData{Code: "abc"}}).PaymentCode())
}
