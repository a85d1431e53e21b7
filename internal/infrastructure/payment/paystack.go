// Package payment talks to the Paystack transaction API.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

const (
	DefaultBaseURL = "https://api.paystack.co"

	EventChargeSuccess = "charge.success"

	httpTimeout     = 15 * time.Second
	maxResponseSize = 1 << 20
)

var (
	ErrNotConfigured = errors.New("paystack is not configured")
	ErrGateway       = errors.New("paystack request failed")
)

type InitializeRequest struct {
	Email       string
	Amount      int64
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Transaction is the verified state of a charge. Raw keeps the gateway payload.
type Transaction struct {
	Reference       string
	Status          string
	Amount          int64
	Currency        string
	GatewayResponse string
	PaidAt          *time.Time
	Raw             map[string]any
}

func (t *Transaction) Succeeded() bool {
	return t.Status == "success"
}

type WebhookEvent struct {
	Event string
	Data  Transaction
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	Reference       string     `json:"reference"`
	Status          string     `json:"status"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	GatewayResponse string     `json:"gateway_response"`
	PaidAt          *time.Time `json:"paid_at"`
}

type PaystackClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewPaystackClient(cfg config.PaystackConfig, log logger.Interface) *PaystackClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PaystackClient{
		secretKey:  cfg.SecretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: httpTimeout},
		logger:     log,
	}
}

func (c *PaystackClient) Configured() bool {
	return c.secretKey != ""
}

// Initialize opens a transaction and returns the hosted checkout URL.
func (c *PaystackClient) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	body := map[string]any{
		"email":     req.Email,
		"amount":    req.Amount,
		"reference": req.Reference,
	}
	if req.Currency != "" {
		body["currency"] = req.Currency
	}
	if req.CallbackURL != "" {
		body["callback_url"] = req.CallbackURL
	}
	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}

	var data initializeData
	if _, err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}

	c.logger.Infow("paystack transaction initialized", "reference", data.Reference)
	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the authoritative state of a transaction.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*Transaction, error) {
	var data transactionData
	raw, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data)
	if err != nil {
		return nil, err
	}
	return toTransaction(data, raw), nil
}

// VerifySignature checks the x-paystack-signature header: the hex HMAC-SHA512
// of the raw body keyed with the secret key.
func (c *PaystackClient) VerifySignature(body []byte, signature string) bool {
	if !c.Configured() || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(c.secretKey, body)), []byte(strings.ToLower(signature)))
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhook decodes a webhook body. The signature must be checked first.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode webhook: %w", err)
	}

	var data transactionData
	if len(ev.Data) > 0 {
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to decode webhook data: %w", err)
		}
	}
	return &WebhookEvent{Event: ev.Event, Data: *toTransaction(data, ev.Data)}, nil
}

func toTransaction(d transactionData, raw json.RawMessage) *Transaction {
	t := &Transaction{
		Reference:       d.Reference,
		Status:          strings.ToLower(d.Status),
		Amount:          d.Amount,
		Currency:        strings.ToUpper(d.Currency),
		GatewayResponse: d.GatewayResponse,
		PaidAt:          d.PaidAt,
		Raw:             map[string]any{},
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &t.Raw)
	}
	return t
}

func (c *PaystackClient) do(ctx context.Context, method, path string, in, out any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		c.logger.Warnw("paystack returned a non JSON body", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Status {
		c.logger.Warnw("paystack request rejected", "path", path, "status", resp.StatusCode, "message", env.Message)
		return nil, fmt.Errorf("%w: %s", ErrGateway, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}
	return env.Data, nil
}
