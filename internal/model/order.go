package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderActive    = "active"
	OrderCancelled = "cancelled"
	OrderExpired   = "expired"
)

// Payment statuses.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Order records a customer's purchase of a plan under a billing cycle.
type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         int64           `json:"user_id"`
	PlanID         int64           `json:"plan_id"`
	BillingCycle   string          `json:"billing_cycle"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	GatewayOrderID *string         `json:"gateway_order_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
