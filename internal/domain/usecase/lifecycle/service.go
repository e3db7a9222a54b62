package lifecycle

import (
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/gateway"
	"github.com/perna2k6/pernateste/internal/domain/port/notify"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
)

// Engine orchestrates the transaction lifecycle: creation against the payment
// gateway, status reconciliation and subscription derivation. It is the sole
// writer of transaction status and payment data after creation, and the single
// choke point both the webhook path and the polling path run through, so the
// two can never diverge in business-rule interpretation.
type Engine struct {
	transactions  persistence.TransactionRepository
	subscriptions persistence.SubscriptionRepository
	gateway       gateway.Client
	notifier      notify.PaymentNotifier
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewEngine wires the lifecycle engine. All collaborators are injected once at
// process start; the engine keeps no other state.
func NewEngine(
	transactions persistence.TransactionRepository,
	subscriptions persistence.SubscriptionRepository,
	gatewayClient gateway.Client,
	notifier notify.PaymentNotifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		transactions:  transactions,
		subscriptions: subscriptions,
		gateway:       gatewayClient,
		notifier:      notifier,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}
