package suitpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	gw "github.com/perna2k6/pernateste/internal/domain/port/gateway"
)

// ProviderName is how this gateway appears in webhook routes and event rows
const ProviderName = "suitpay"

// Options configures the SuitPay client. Credentials may be empty; calls then
// fail at call time with a rejection, never at construction.
type Options struct {
	BaseURL     string
	PublicKey   string // "ci" header
	SecretKey   string // "cs" header
	CallbackURL string
	CallTimeout time.Duration
	// EnrichDelay is how long to wait before the one best-effort re-fetch
	// when charge creation returns without a payment code.
	EnrichDelay time.Duration
}

// Client talks to the SuitPay PIX API. It holds no transaction state and
// performs no retries; retry policy belongs to the caller.
type Client struct {
	opts         Options
	httpClient   *http.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewClient creates a SuitPay gateway client
func NewClient(opts Options, timeProvider coreport.TimeProvider, logger coreport.Logger) *Client {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 10 * time.Second
	}
	return &Client{
		opts:         opts,
		httpClient:   &http.Client{Timeout: opts.CallTimeout},
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Provider returns the provider name used in routes and event records
func (c *Client) Provider() string {
	return ProviderName
}

// Create opens a PIX charge. The provider occasionally returns the charge id
// before the copy-and-paste code is ready; in that case one bounded follow-up
// fetch tries to enrich the payment data, and creation succeeds either way.
func (c *Client) Create(ctx context.Context, req gw.CreateRequest) (*gw.CreateResult, error) {
	body := createRequestBody{
		RequestNumber: req.ExternalReference,
		Amount:        formatAmount(req.AmountMinorUnits),
		Client: clientBlock{
			Name:        req.Buyer.Name,
			Document:    req.Buyer.Document,
			PhoneNumber: req.Buyer.Phone,
			Email:       req.Buyer.Email,
		},
		CallbackURL: c.opts.CallbackURL,
	}

	raw, err := c.post(ctx, "/v1/gateway/request-qrcode", body)
	if err != nil {
		return nil, c.wrap("create", "", err)
	}

	var resp createResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.NewGatewayError(ProviderName, "create", "",
			"unreadable provider response", errs.ErrGatewayRejected)
	}
	if resp.Response != responseOK || resp.IDTransaction == "" {
		return nil, errs.NewGatewayError(ProviderName, "create", resp.IDTransaction,
			providerMessage(resp.Message), errs.ErrGatewayRejected)
	}

	result := &gw.CreateResult{
		GatewayID: resp.IDTransaction,
		PaymentData: entity.PaymentData{
			Code:         resp.PaymentCode,
			QRCodeBase64: resp.PaymentCodeB64,
			PaymentURL:   resp.PaymentURL,
		},
		RawPayload: raw,
	}

	if result.PaymentData.Code == "" {
		c.enrichPaymentData(ctx, result)
	}

	return result, nil
}

// enrichPaymentData performs the single best-effort follow-up fetch for a
// charge whose payment code was not yet available at creation time. Failure
// here is logged and swallowed; the charge already exists.
func (c *Client) enrichPaymentData(ctx context.Context, result *gw.CreateResult) {
	if c.opts.EnrichDelay > 0 {
		c.timeProvider.Sleep(c.opts.EnrichDelay)
	}

	raw, err := c.post(ctx, "/v1/gateway/consult-status-transaction", statusRequestBody{
		IDTransaction: result.GatewayID,
	})
	if err != nil {
		c.logger.Warn("Payment code enrichment fetch failed", map[string]any{
			"gateway_id": result.GatewayID,
			"error":      err.Error(),
		})
		return
	}

	var resp statusResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.Warn("Payment code enrichment response unreadable", map[string]any{
			"gateway_id": result.GatewayID,
		})
		return
	}

	if resp.PaymentCode != "" {
		result.PaymentData.Code = resp.PaymentCode
		result.PaymentData.QRCodeBase64 = resp.PaymentCodeB64
		if resp.PaymentURL != "" {
			result.PaymentData.PaymentURL = resp.PaymentURL
		}
	}
}

// Status fetches and normalizes the provider's view of a transaction
func (c *Client) Status(ctx context.Context, gatewayID string) (entity.TransactionStatus, error) {
	raw, err := c.post(ctx, "/v1/gateway/consult-status-transaction", statusRequestBody{
		IDTransaction: gatewayID,
	})
	if err != nil {
		return "", c.wrap("status", gatewayID, err)
	}

	var resp statusResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", errs.NewGatewayError(ProviderName, "status", gatewayID,
			"unreadable provider response", errs.ErrGatewayRejected)
	}
	if resp.Response != responseOK {
		return "", errs.NewGatewayError(ProviderName, "status", gatewayID,
			providerMessage(resp.Message), errs.ErrGatewayRejected)
	}

	return NormalizeStatus(resp.StatusTransaction), nil
}

// Refund asks the provider to return the funds
func (c *Client) Refund(ctx context.Context, gatewayID string) (bool, error) {
	raw, err := c.post(ctx, "/v1/gateway/request-refund", statusRequestBody{
		IDTransaction: gatewayID,
	})
	if err != nil {
		return false, c.wrap("refund", gatewayID, err)
	}

	var resp refundResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false, errs.NewGatewayError(ProviderName, "refund", gatewayID,
			"unreadable provider response", errs.ErrGatewayRejected)
	}

	return resp.Response == responseOK, nil
}

// post sends one JSON request with the credential headers and a bounded
// timeout, returning the raw response body. Transport failures surface as
// ErrGatewayUnreachable, non-2xx statuses as ErrGatewayRejected.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	callCtx, cancel := c.timeProvider.WithTimeout(ctx, c.opts.CallTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ci", c.opts.PublicKey)
	httpReq.Header.Set("cs", c.opts.SecretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnreachable, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %s", errs.ErrGatewayUnreachable, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: provider returned HTTP %d: %s",
			errs.ErrGatewayRejected, resp.StatusCode, truncate(string(raw), 200))
	}

	return raw, nil
}

// wrap attaches operation context to transport-level errors while leaving
// already-wrapped gateway errors untouched
func (c *Client) wrap(operation, gatewayID string, err error) error {
	var gerr *errs.GatewayError
	if errors.As(err, &gerr) {
		return err
	}
	sentinel := errs.ErrGatewayUnreachable
	if errors.Is(err, errs.ErrGatewayRejected) {
		sentinel = errs.ErrGatewayRejected
	}
	return errs.NewGatewayError(ProviderName, operation, gatewayID, err.Error(), sentinel)
}

func providerMessage(message string) string {
	if message == "" {
		return "provider reported a non-success response"
	}
	return message
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
