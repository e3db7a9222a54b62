package entity

import (
	"time"

	tport "github.com/perna2k6/pernateste/internal/domain/port/core"
)

// TransactionStatus defines possible status values for a payment transaction
type TransactionStatus string

// Transaction statuses. pending is initial; paid, failed and cancelled are
// terminal with respect to subscription creation; refunded is terminal absolutely.
const (
	StatusPending   TransactionStatus = "pending"
	StatusPaid      TransactionStatus = "paid"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusRefunded  TransactionStatus = "refunded"
)

// MethodPix is the only payment method handled by this storefront
const MethodPix = "pix"

// statusRank orders statuses on the monotonic lattice
// pending < {paid, failed, cancelled} < refunded.
func statusRank(s TransactionStatus) int {
	switch s {
	case StatusPending:
		return 0
	case StatusPaid, StatusFailed, StatusCancelled:
		return 1
	case StatusRefunded:
		return 2
	default:
		return -1
	}
}

// IsValidStatus reports whether s is one of the known transaction statuses
func IsValidStatus(s TransactionStatus) bool {
	return statusRank(s) >= 0
}

// CanTransition reports whether moving from the current status to next is a
// forward move on the lattice. Equal or backwards transitions are safe no-ops
// so a poller racing behind an already-applied webhook never regresses state.
// Between same-rank terminal states there is no path; refunded is only
// reachable from paid.
func CanTransition(current, next TransactionStatus) bool {
	if current == next {
		return false
	}
	if next == StatusRefunded {
		return current == StatusPaid
	}
	return statusRank(next) > statusRank(current)
}

// Buyer is the immutable snapshot of checkout buyer details captured at
// transaction creation time. Later profile edits never touch it.
type Buyer struct {
	Name     string
	Email    string
	Document string
	Phone    string
}

// PaymentData holds the gateway-specific payload needed to display a PIX
// charge. Populated at creation and possibly amended once the provider makes
// supplementary detail available.
type PaymentData struct {
	Code         string // copy-and-paste PIX payment code
	QRCodeBase64 string // rasterized QR, base64 PNG, may be empty
	PaymentURL   string // hosted payment page, may be empty
}

// Transaction represents one payment attempt. It is never physically deleted;
// the row is the financial audit trail.
type Transaction struct {
	ID          uint64            // internal primary key
	GatewayID   string            // the provider's transaction id, unique and immutable
	ExternalID  string            // caller-generated correlation token sent to the gateway
	Amount      int64             // minor currency units; never floating point
	Status      TransactionStatus // owned by the lifecycle engine after creation
	Method      string            // fixed to pix in this scope
	PlanCode    string
	PlanTitle   string
	Buyer       Buyer
	PaymentData *PaymentData
	UserID      *uint64 // optional owner; subscriptions require it
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction builds a pending transaction from a validated checkout form
// and the identifiers returned by the gateway.
func NewTransaction(
	form *CheckoutForm,
	gatewayID string,
	externalID string,
	paymentData *PaymentData,
	timeProvider tport.TimeProvider,
) *Transaction {
	now := timeProvider.Now()
	return &Transaction{
		GatewayID:  gatewayID,
		ExternalID: externalID,
		Amount:     form.Price,
		Status:     StatusPending,
		Method:     MethodPix,
		PlanCode:   form.PlanCode,
		PlanTitle:  form.PlanTitle,
		Buyer: Buyer{
			Name:     form.Name,
			Email:    form.Email,
			Document: form.NormalizedDocument(),
			Phone:    form.NormalizedPhone(),
		},
		PaymentData: paymentData,
		UserID:      form.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTerminal reports whether no productive transition remains absent a refund
func (t *Transaction) IsTerminal() bool {
	return statusRank(t.Status) >= 1
}

// PaymentCode returns the displayable PIX code, empty when the gateway never
// delivered one.
func (t *Transaction) PaymentCode() string {
	if t.PaymentData == nil {
		return ""
	}
	return t.PaymentData.Code
}
