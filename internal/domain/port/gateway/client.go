package gateway

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// CreateRequest carries everything a provider needs to open a PIX charge
type CreateRequest struct {
	Buyer             entity.Buyer
	AmountMinorUnits  int64
	ExternalReference string
}

// CreateResult is the provider's answer to a successful charge creation.
// RawPayload preserves the provider response verbatim for audit.
type CreateResult struct {
	GatewayID   string
	PaymentData entity.PaymentData
	RawPayload  []byte
}

// Client is the capability interface over one payment provider's wire
// protocol. Implementations hold no state and perform no retries; retry
// policy belongs to the caller.
//
// Create fails with ErrGatewayUnreachable on transport errors and
// ErrGatewayRejected when the provider reports a non-success response, both
// wrapped in a *errs.GatewayError carrying the provider message.
//
// Status normalizes the provider's vocabulary into the fixed transaction
// status set; unrecognized provider codes map to pending, never to success.
type Client interface {
	Provider() string
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	Status(ctx context.Context, gatewayID string) (entity.TransactionStatus, error)
	Refund(ctx context.Context, gatewayID string) (bool, error)
}
