package suitpay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	"github.com/perna2k6/pernateste/internal/domain/usecase/webhook"
)

// Wire shapes for the provider's JSON API. The provider responds with loosely
// shaped JSON; only fields this service uses are modeled, everything else is
// ignored at the boundary instead of being trusted structurally.

type clientBlock struct {
	Name        string `json:"name"`
	Document    string `json:"document"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type createRequestBody struct {
	RequestNumber string      `json:"requestNumber"`
	Amount        string      `json:"amount"` // BRL decimal string, e.g. "299.00"
	Client        clientBlock `json:"client"`
	CallbackURL   string      `json:"callbackUrl,omitempty"`
}

type createResponseBody struct {
	Response      string `json:"response"`
	IDTransaction string `json:"idTransaction"`
	PaymentCode   string `json:"paymentCode"`
	PaymentCodeB64 string `json:"paymentCodeBase64"`
	PaymentURL    string `json:"paymentUrl"`
	Message       string `json:"message"`
}

type statusRequestBody struct {
	IDTransaction string `json:"idTransaction"`
}

type statusResponseBody struct {
	Response          string `json:"response"`
	StatusTransaction string `json:"statusTransaction"`
	PaymentCode       string `json:"paymentCode"`
	PaymentCodeB64    string `json:"paymentCodeBase64"`
	PaymentURL        string `json:"paymentUrl"`
	Message           string `json:"message"`
}

type refundResponseBody struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

// webhookBody is what the provider POSTs to the callback URL
type webhookBody struct {
	IDTransaction     string `json:"idTransaction"`
	StatusTransaction string `json:"statusTransaction"`
	TypeTransaction   string `json:"typeTransaction"`
}

// responseOK is the provider's success marker in every endpoint
const responseOK = "OK"

// NormalizeStatus maps the provider status vocabulary onto the fixed
// transaction status set. Unrecognized codes map to pending: an unknown
// provider state must never silently read as success.
func NormalizeStatus(providerStatus string) entity.TransactionStatus {
	switch strings.ToUpper(strings.TrimSpace(providerStatus)) {
	case "PAID_OUT", "PAYED", "APPROVED":
		return entity.StatusPaid
	case "WAITING_FOR_APPROVAL", "WAITING_PAYMENT", "CREATED":
		return entity.StatusPending
	case "CANCELED", "CANCELLED", "EXPIRED":
		return entity.StatusCancelled
	case "UNPAID", "ERROR", "CHARGEBACK":
		return entity.StatusFailed
	default:
		return entity.StatusPending
	}
}

// ParseWebhook turns a raw provider callback payload into a normalized
// notice for the ingestor.
func ParseWebhook(raw []byte) (webhook.Notice, error) {
	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return webhook.Notice{}, fmt.Errorf("decoding suitpay webhook: %w", err)
	}
	if body.IDTransaction == "" {
		return webhook.Notice{}, errors.New("suitpay webhook missing idTransaction")
	}

	eventType := "transaction." + strings.ToLower(strings.TrimSpace(body.StatusTransaction))
	return webhook.Notice{
		EventType: eventType,
		GatewayID: body.IDTransaction,
		Status:    NormalizeStatus(body.StatusTransaction),
	}, nil
}

// formatAmount renders minor currency units as the decimal string the
// provider expects, without ever going through floating point.
func formatAmount(minorUnits int64) string {
	return fmt.Sprintf("%d.%02d", minorUnits/100, minorUnits%100)
}
