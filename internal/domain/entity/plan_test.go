package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPeriodEnd(t *testing.T) {
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		planCode   string
		expected   time.Time
		recognized bool
	}{
		{"basic runs one month", PlanBasic, time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), true},
		{"premium runs one month", PlanPremium, time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), true},
		{"annual runs one year", PlanAnnual, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), true},
		{"unknown falls back to monthly", "enterprise", time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), false},
		{"empty falls back to monthly", "", time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			end, recognized := PlanPeriodEnd(tc.planCode, start)
			assert.Equal(t, tc.expected, end)
			assert.Equal(t, tc.recognized, recognized)
		})
	}
}

func TestNewSubscription(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: fixedTime}
	userID := uint64(7)

	t.Run("monthly plan", func(t *testing.T) {
		txn := &Transaction{ID: 11, PlanCode: PlanBasic, UserID: &userID}
		sub, recognized := NewSubscription(txn, clock)

		assert.True(t, recognized)
		assert.Equal(t, uint64(7), sub.UserID)
		assert.Equal(t, uint64(11), sub.TransactionID)
		assert.Equal(t, SubscriptionActive, sub.Status)
		assert.Equal(t, fixedTime, sub.StartsAt)
		assert.Equal(t, fixedTime.AddDate(0, 1, 0), sub.EndsAt)
	})

	t.Run("annual plan runs about a year", func(t *testing.T) {
		txn := &Transaction{ID: 12, PlanCode: PlanAnnual, UserID: &userID}
		sub, recognized := NewSubscription(txn, clock)

		require.True(t, recognized)
		assert.Equal(t, fixedTime.AddDate(1, 0, 0), sub.EndsAt)
		assert.InDelta(t, 365, sub.EndsAt.Sub(sub.StartsAt).Hours()/24, 1)
	})

	t.Run("unmapped plan defaults to monthly", func(t *testing.T) {
		txn := &Transaction{ID: 13, PlanCode: "vip", UserID: &userID}
		sub, recognized := NewSubscription(txn, clock)

		assert.False(t, recognized)
		assert.Equal(t, fixedTime.AddDate(0, 1, 0), sub.EndsAt)
	})
}

func TestSubscriptionIsCurrent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		sub     Subscription
		current bool
	}{
		{"active with future end", Subscription{Status: SubscriptionActive, EndsAt: now.Add(time.Hour)}, true},
		{"active ending exactly now", Subscription{Status: SubscriptionActive, EndsAt: now}, false},
		{"active with past end", Subscription{Status: SubscriptionActive, EndsAt: now.Add(-time.Hour)}, false},
		{"expired with future end", Subscription{Status: SubscriptionExpired, EndsAt: now.Add(time.Hour)}, false},
		{"cancelled with future end", Subscription{Status: SubscriptionCancelled, EndsAt: now.Add(time.Hour)}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.current, tc.sub.IsCurrent(now))
		})
	}
}
