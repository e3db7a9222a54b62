package lifecycle

import (
	"context"
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
)

// fixedClock implements the TimeProvider port with a settable instant
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) Sleep(time.Duration)             {}
func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// fakeGateway implements the gateway client port with configurable behavior
type fakeGateway struct {
	createFunc func(ctx context.Context, req gw.CreateRequest) (*gw.CreateResult, error)
	statusFunc func(ctx context.Context, gatewayID string) (entity.TransactionStatus, error)
	refundFunc func(ctx context.Context, gatewayID string) (bool, error)

	createCalls int
}

func (g *fakeGateway) Provider() string { return "fake" }

func (g *fakeGateway) Create(ctx context.Context, req gw.CreateRequest) (*gw.CreateResult, error) {
	g.createCalls++
	return g.createFunc(ctx, req)
}

func (g *fakeGateway) Status(ctx context.Context, gatewayID string) (entity.TransactionStatus, error) {
	return g.statusFunc(ctx, gatewayID)
}

func (g *fakeGateway) Refund(ctx context.Context, gatewayID string) (bool, error) {
	return g.refundFunc(ctx, gatewayID)
}

// recordingNotifier collects failed-payment notifications
type recordingNotifier struct {
	failed []string
	err    error
}

func (n *recordingNotifier) PaymentFailed(_ context.Context, txn *entity.Transaction) error {
	n.failed = append(n.failed, txn.GatewayID)
	return n.err
}
