package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/model"
)

// ReferralsRepository persists referral links and commissions.
type ReferralsRepository struct {
	db Querier
}

// NewReferralsRepository constructs a ReferralsRepository over db.
func NewReferralsRepository(db Querier) *ReferralsRepository {
	return &ReferralsRepository{db: db}
}

// WithTx returns a copy bound to a transaction.
func (r *ReferralsRepository) WithTx(tx pgx.Tx) *ReferralsRepository {
	return &ReferralsRepository{db: tx}
}

const referralColumns = `id, referrer_id, referred_id, order_id, commission_amount,
	plan_type, status, created_at, credited_at`

func scanReferral(row pgx.Row) (*model.Referral, error) {
	var ref model.Referral
	err := row.Scan(
		&ref.ID, &ref.ReferrerID, &ref.ReferredID, &ref.OrderID, &ref.CommissionAmount,
		&ref.PlanType, &ref.Status, &ref.CreatedAt, &ref.CreditedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// Create inserts a pending referral link at signup time.
func (r *ReferralsRepository) Create(ctx context.Context, referrerID, referredID int64) (*model.Referral, error) {
	row := r.db.QueryRow(ctx, `
		insert into referrals (referrer_id, referred_id)
		values ($1, $2)
		returning `+referralColumns,
		referrerID, referredID,
	)
	return scanReferral(row)
}

// GetPendingByReferred finds the pending referral for a referred user,
// if any.
func (r *ReferralsRepository) GetPendingByReferred(ctx context.Context, referredID int64) (*model.Referral, error) {
	row := r.db.QueryRow(ctx, `
		select `+referralColumns+` from referrals
		where referred_id = $1 and status = $2`,
		referredID, model.ReferralPending,
	)
	ref, err := scanReferral(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:referrals: %w", err)
	}
	return ref, err
}

// Credit marks a referral credited with the commission earned from an
// order.
func (r *ReferralsRepository) Credit(ctx context.Context, id, orderID int64, amount decimal.Decimal, planType string) (*model.Referral, error) {
	row := r.db.QueryRow(ctx, `
		update referrals
		set order_id = $2, commission_amount = $3, plan_type = $4,
			status = $5, credited_at = now()
		where id = $1
		returning `+referralColumns,
		id, orderID, amount, planType, model.ReferralCredited,
	)
	ref, err := scanReferral(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:referrals: %w", err)
	}
	return ref, err
}

// ListByReferrer returns every referral attributed to a referrer.
func (r *ReferralsRepository) ListByReferrer(ctx context.Context, referrerID int64) ([]*model.Referral, error) {
	rows, err := r.db.Query(ctx, `
		select `+referralColumns+` from referrals
		where referrer_id = $1 order by created_at desc`, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []*model.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, ref)
	}
	return referrals, rows.Err()
}

// StatsByReferrer aggregates a referrer's program standing.
func (r *ReferralsRepository) StatsByReferrer(ctx context.Context, referrerID int64) (*model.ReferralStats, error) {
	var stats model.ReferralStats
	err := r.db.QueryRow(ctx, `
		select
			count(*),
			count(*) filter (where status = $2),
			coalesce(sum(commission_amount) filter (where status = $2), 0)
		from referrals
		where referrer_id = $1`,
		referrerID, model.ReferralCredited,
	).Scan(&stats.TotalReferred, &stats.TotalCredited, &stats.TotalEarnings)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
