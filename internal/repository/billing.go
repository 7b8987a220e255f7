package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// BillingRepository persists the billing ledger.
type BillingRepository struct {
	db Querier
}

// NewBillingRepository constructs a BillingRepository over db.
func NewBillingRepository(db Querier) *BillingRepository {
	return &BillingRepository{db: db}
}

// WithTx returns a copy bound to a transaction.
func (r *BillingRepository) WithTx(tx pgx.Tx) *BillingRepository {
	return &BillingRepository{db: tx}
}

const billingColumns = `id, user_id, order_id, kind, amount, currency,
	gateway_payment_id, description, created_at`

func scanBillingRecord(row pgx.Row) (*model.BillingRecord, error) {
	var b model.BillingRecord
	err := row.Scan(
		&b.ID, &b.UserID, &b.OrderID, &b.Kind, &b.Amount, &b.Currency,
		&b.GatewayPaymentID, &b.Description, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create appends a ledger entry.
func (r *BillingRepository) Create(ctx context.Context, b *model.BillingRecord) (*model.BillingRecord, error) {
	row := r.db.QueryRow(ctx, `
		insert into billing_records (user_id, order_id, kind, amount, currency,
			gateway_payment_id, description)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning `+billingColumns,
		b.UserID, b.OrderID, b.Kind, b.Amount, b.Currency,
		b.GatewayPaymentID, b.Description,
	)
	return scanBillingRecord(row)
}

// ListByUser returns a user's ledger entries, newest first.
func (r *BillingRepository) ListByUser(ctx context.Context, userID int64) ([]*model.BillingRecord, error) {
	rows, err := r.db.Query(ctx, `
		select `+billingColumns+` from billing_records where user_id = $1 order by created_at desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.BillingRecord
	for rows.Next() {
		record, err := scanBillingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
