package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing record kinds.
const (
	BillingPayment    = "payment"
	BillingRefund     = "refund"
	BillingCommission = "commission"
)

// BillingRecord is one entry in a user's billing ledger: a gateway
// payment, a refund, or a referral commission credit.
type BillingRecord struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	OrderID          *int64          `json:"order_id,omitempty"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	GatewayPaymentID *string         `json:"gateway_payment_id,omitempty"`
	Description      string          `json:"description"`
	CreatedAt        time.Time       `json:"created_at"`
}
