package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return &Client{
		keyID:         "rzp_test_key",
		keySecret:     "test_key_secret",
		webhookSecret: "test_webhook_secret",
		currency:      "INR",
	}
}

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	c := testClient()

	signature := sign("test_key_secret", "order_abc|pay_xyz")

	assert.True(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", signature))
}

func TestVerifyPaymentSignatureRejects(t *testing.T) {
	c := testClient()

	valid := sign("test_key_secret", "order_abc|pay_xyz")

	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_other", valid))
	assert.False(t, c.VerifyPaymentSignature("order_other", "pay_xyz", valid))
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", ""))
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", "deadbeef"))

	wrongKey := sign("other_secret", "order_abc|pay_xyz")
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", wrongKey))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := testClient()

	body := []byte(`{"event":"payment.captured"}`)
	signature := sign("test_webhook_secret", string(body))

	assert.True(t, c.VerifyWebhookSignature(body, signature))
	assert.False(t, c.VerifyWebhookSignature([]byte(`{"event":"tampered"}`), signature))
	assert.False(t, c.VerifyWebhookSignature(body, ""))
}

func TestCreateOrder(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "test_key_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   149900,
			Currency: "INR",
			Receipt:  "RCPT-4F9A21C3",
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := testClient()
	c.baseURL = srv.URL
	c.httpClient = srv.Client()

	order, err := c.CreateOrder(t.Context(), decimal.NewFromFloat(1499.00), "RCPT-4F9A21C3", map[string]string{
		"user_id": "7",
	})
	require.NoError(t, err)

	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, "created", order.Status)

	// Amounts go over the wire in minor units.
	assert.Equal(t, float64(149900), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient()
	c.baseURL = srv.URL
	c.httpClient = srv.Client()

	_, err := c.CreateOrder(t.Context(), decimal.NewFromInt(499), "RCPT-1", nil)
	assert.Error(t, err)
}
