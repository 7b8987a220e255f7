package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing cycles a plan can be purchased under.
const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleAnnual    = "annual"
	CycleBiennial  = "biennial"
	CycleTriennial = "triennial"
)

// Plan is a hosting-service pricing tier offered for purchase.
type Plan struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	CPUCores       int             `json:"cpu_cores"`
	MemoryMB       int             `json:"memory_mb"`
	StorageGB      int             `json:"storage_gb"`
	BandwidthGB    int             `json:"bandwidth_gb"`
	MonthlyPrice   decimal.Decimal `json:"monthly_price"`
	QuarterlyPrice decimal.Decimal `json:"quarterly_price"`
	AnnualPrice    decimal.Decimal `json:"annual_price"`
	BiennialPrice  decimal.Decimal `json:"biennial_price"`
	TriennialPrice decimal.Decimal `json:"triennial_price"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PriceFor returns the plan price for a billing cycle. The second
// return value is false for an unknown cycle.
func (p *Plan) PriceFor(cycle string) (decimal.Decimal, bool) {
	switch cycle {
	case CycleMonthly:
		return p.MonthlyPrice, true
	case CycleQuarterly:
		return p.QuarterlyPrice, true
	case CycleAnnual:
		return p.AnnualPrice, true
	case CycleBiennial:
		return p.BiennialPrice, true
	case CycleTriennial:
		return p.TriennialPrice, true
	default:
		return decimal.Zero, false
	}
}

// IsLongTermCycle reports whether a billing cycle is billed a year or
// more at a time. Long-term purchases earn the higher referral
// commission rate.
func IsLongTermCycle(cycle string) bool {
	switch cycle {
	case CycleAnnual, CycleBiennial, CycleTriennial:
		return true
	default:
		return false
	}
}
