package entity

import (
	"time"

	tport "github.com/perna2k6/pernateste/internal/domain/port/core"
)

// SubscriptionStatus defines possible status values for a subscription
type SubscriptionStatus string

// Subscription statuses
const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription represents a grant of access derived from exactly one paid
// transaction. At most one subscription per user may be current at a time.
type Subscription struct {
	ID            uint64
	UserID        uint64 // required owner
	TransactionID uint64 // source transaction, one activation per transaction
	PlanCode      string
	Status        SubscriptionStatus
	StartsAt      time.Time
	EndsAt        time.Time
	CreatedAt     time.Time
}

// NewSubscription derives a subscription from a paid transaction. The plan
// period rules live in PlanPeriodEnd; recognized reports whether the plan code
// mapped to a known period or fell back to the monthly rule.
func NewSubscription(txn *Transaction, timeProvider tport.TimeProvider) (sub *Subscription, recognized bool) {
	start := timeProvider.Now()
	end, recognized := PlanPeriodEnd(txn.PlanCode, start)
	var userID uint64
	if txn.UserID != nil {
		userID = *txn.UserID
	}
	return &Subscription{
		UserID:        userID,
		TransactionID: txn.ID,
		PlanCode:      txn.PlanCode,
		Status:        SubscriptionActive,
		StartsAt:      start,
		EndsAt:        end,
		CreatedAt:     start,
	}, recognized
}

// IsCurrent reports whether the subscription grants access at the given
// instant: active status and an end strictly in the future. Expired rows that
// still read "active" in storage must fail this check.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && s.EndsAt.After(now)
}
