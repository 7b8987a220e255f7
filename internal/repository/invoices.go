package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// InvoicesRepository persists billing documents.
type InvoicesRepository struct {
	db Querier
}

// NewInvoicesRepository constructs an InvoicesRepository over db.
func NewInvoicesRepository(db Querier) *InvoicesRepository {
	return &InvoicesRepository{db: db}
}

// WithTx returns a copy bound to a transaction.
func (r *InvoicesRepository) WithTx(tx pgx.Tx) *InvoicesRepository {
	return &InvoicesRepository{db: tx}
}

const invoiceColumns = `id, invoice_number, order_id, user_id, amount, tax_amount,
	total_amount, status, due_at, paid_at, created_at`

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.UserID, &inv.Amount, &inv.TaxAmount,
		&inv.TotalAmount, &inv.Status, &inv.DueAt, &inv.PaidAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserts an invoice.
func (r *InvoicesRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	row := r.db.QueryRow(ctx, `
		insert into invoices (invoice_number, order_id, user_id, amount, tax_amount,
			total_amount, status, due_at, paid_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning `+invoiceColumns,
		inv.InvoiceNumber, inv.OrderID, inv.UserID, inv.Amount, inv.TaxAmount,
		inv.TotalAmount, inv.Status, inv.DueAt, inv.PaidAt,
	)
	return scanInvoice(row)
}

// GetByID fetches an invoice by primary key.
func (r *InvoicesRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	row := r.db.QueryRow(ctx, `select `+invoiceColumns+` from invoices where id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:invoices: %w", err)
	}
	return inv, err
}

// ListByUser returns a user's invoices, newest first.
func (r *InvoicesRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Invoice, error) {
	rows, err := r.db.Query(ctx, `
		select `+invoiceColumns+` from invoices where user_id = $1 order by created_at desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// ListAll returns every invoice (admin view).
func (r *InvoicesRepository) ListAll(ctx context.Context) ([]*model.Invoice, error) {
	rows, err := r.db.Query(ctx, `select `+invoiceColumns+` from invoices order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// MarkPaid stamps an invoice paid at the current time.
func (r *InvoicesRepository) MarkPaid(ctx context.Context, id int64) (*model.Invoice, error) {
	row := r.db.QueryRow(ctx, `
		update invoices set status = $2, paid_at = now() where id = $1
		returning `+invoiceColumns,
		id, model.InvoicePaid,
	)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:invoices: %w", err)
	}
	return inv, err
}
