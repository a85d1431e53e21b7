package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

const testSecret = "sk_test_secret"

func newTestClient(t *testing.T, handler http.HandlerFunc) *PaystackClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPaystackClient(config.PaystackConfig{SecretKey: testSecret, BaseURL: srv.URL}, logger.NewNop())
}

func TestInitialize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer "+testSecret, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent@example.com", body["email"])
		assert.Equal(t, float64(500000), body["amount"])
		assert.Equal(t, "EST-1", body["reference"])

		w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.paystack.com/x","access_code":"x","reference":"EST-1"}}`))
	})

	res, err := c.Initialize(context.Background(), InitializeRequest{
		Email:     "agent@example.com",
		Amount:    500000,
		Currency:  "NGN",
		Reference: "EST-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/x", res.AuthorizationURL)
	assert.Equal(t, "EST-1", res.Reference)
}

func TestVerify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/EST-2", r.URL.Path)
		w.Write([]byte(`{"status":true,"message":"ok","data":{"reference":"EST-2","status":"success","amount":1500000,"currency":"ngn","gateway_response":"Successful","paid_at":"2026-09-01T10:00:00Z"}}`))
	})

	tx, err := c.Verify(context.Background(), "EST-2")
	require.NoError(t, err)
	assert.True(t, tx.Succeeded())
	assert.Equal(t, int64(1500000), tx.Amount)
	assert.Equal(t, "NGN", tx.Currency)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, "Successful", tx.Raw["gateway_response"])
}

func TestGatewayErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	})
	_, err := c.Verify(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGateway)

	unconfigured := NewPaystackClient(config.PaystackConfig{}, logger.NewNop())
	_, err = unconfigured.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifySignature(t *testing.T) {
	c := NewPaystackClient(config.PaystackConfig{SecretKey: testSecret}, logger.NewNop())
	body := []byte(`{"event":"charge.success","data":{"reference":"EST-3","status":"success","amount":100}}`)

	assert.True(t, c.VerifySignature(body, Sign(testSecret, body)))
	assert.False(t, c.VerifySignature(body, Sign("other", body)))
	assert.False(t, c.VerifySignature(body, ""))
	assert.False(t, c.VerifySignature(append(body, ' '), Sign(testSecret, body)))
}

func TestParseWebhook(t *testing.T) {
	ev, err := ParseWebhook([]byte(`{"event":"charge.success","data":{"reference":"EST-3","status":"success","amount":100,"currency":"NGN"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventChargeSuccess, ev.Event)
	assert.Equal(t, "EST-3", ev.Data.Reference)
	assert.True(t, ev.Data.Succeeded())

	_, err = ParseWebhook([]byte("not json"))
	assert.Error(t, err)
}
