// Package payment provides the payment-gateway client.
//
// The gateway follows the Razorpay checkout model: the backend
// creates a gateway order, the frontend collects payment against it,
// and the backend verifies the returned signature before treating the
// purchase as paid.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/config"
)

// DefaultBaseURL is the gateway's REST endpoint.
const DefaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the payment gateway over HTTP.
type Client struct {
	keyID         string
	keySecret     string
	webhookSecret string
	currency      string

	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		keyID:         cfg.Payment.KeyID,
		keySecret:     cfg.Payment.KeySecret,
		webhookSecret: cfg.Payment.WebhookSecret,
		currency:      cfg.Payment.Currency,
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// KeyID returns the public key identifier for frontend checkout.
func (c *Client) KeyID() string {
	return c.keyID
}

// Currency returns the configured settlement currency.
func (c *Client) Currency() string {
	return c.currency
}

// GatewayOrder is the gateway's order record returned at creation.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway. The amount is
// converted to the currency's minor unit (paise for INR), which is
// what the gateway expects.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string, notes map[string]string) (*GatewayOrder, error) {
	body := map[string]any{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": c.currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling gateway order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building gateway order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decoding gateway order response: %w", err)
	}

	return &order, nil
}
