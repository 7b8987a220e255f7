package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referral plan types; they pick the commission rate.
const (
	PlanTypeRecurring = "recurring"
	PlanTypeLongTerm  = "longterm"
)

// Referral statuses.
const (
	ReferralPending  = "pending"
	ReferralCredited = "credited"
)

// Referral links a referred signup to its referrer and tracks the
// commission earned once the referred user pays for an order.
type Referral struct {
	ID               int64           `json:"id"`
	ReferrerID       int64           `json:"referrer_id"`
	ReferredID       int64           `json:"referred_id"`
	OrderID          *int64          `json:"order_id,omitempty"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PlanType         string          `json:"plan_type"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	CreditedAt       *time.Time      `json:"credited_at,omitempty"`
}

// ReferralStats summarizes a referrer's program standing.
type ReferralStats struct {
	ReferralCode   string          `json:"referral_code"`
	TotalReferred  int64           `json:"total_referred"`
	TotalCredited  int64           `json:"total_credited"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
}
