package dto

import (
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// SubscriptionResponse represents the API view of a subscription
type SubscriptionResponse struct {
	UserID   uint64    `json:"userId"`
	PlanCode string    `json:"planCode"`
	Status   string    `json:"status"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// FromSubscription maps a subscription entity to its API view
func FromSubscription(sub *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		UserID:   sub.UserID,
		PlanCode: sub.PlanCode,
		Status:   string(sub.Status),
		StartsAt: sub.StartsAt,
		EndsAt:   sub.EndsAt,
	}
}
