package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// OrdersRepository persists purchase orders.
type OrdersRepository struct {
	db Querier
}

// NewOrdersRepository constructs an OrdersRepository over db.
func NewOrdersRepository(db Querier) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction, so
// order creation can share a transaction with invoice and billing
// writes.
func (r *OrdersRepository) WithTx(tx pgx.Tx) *OrdersRepository {
	return &OrdersRepository{db: tx}
}

const orderColumns = `id, order_number, user_id, plan_id, billing_cycle, amount, status,
	payment_method, payment_status, gateway_order_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.PlanID, &o.BillingCycle, &o.Amount, &o.Status,
		&o.PaymentMethod, &o.PaymentStatus, &o.GatewayOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an order.
func (r *OrdersRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	row := r.db.QueryRow(ctx, `
		insert into orders (order_number, user_id, plan_id, billing_cycle, amount, status,
			payment_method, payment_status, gateway_order_id)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning `+orderColumns,
		o.OrderNumber, o.UserID, o.PlanID, o.BillingCycle, o.Amount, o.Status,
		o.PaymentMethod, o.PaymentStatus, o.GatewayOrderID,
	)
	return scanOrder(row)
}

// GetByID fetches an order by primary key.
func (r *OrdersRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	row := r.db.QueryRow(ctx, `select `+orderColumns+` from orders where id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:orders: %w", err)
	}
	return order, err
}

// ListByUser returns a user's orders, newest first.
func (r *OrdersRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	rows, err := r.db.Query(ctx, `
		select `+orderColumns+` from orders where user_id = $1 order by created_at desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListAll returns every order (admin view).
func (r *OrdersRepository) ListAll(ctx context.Context) ([]*model.Order, error) {
	rows, err := r.db.Query(ctx, `select `+orderColumns+` from orders order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*model.Order, error) {
	var orders []*model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// GetByGatewayOrderID fetches the order tied to a payment gateway
// order, used by the webhook flow.
func (r *OrdersRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	row := r.db.QueryRow(ctx,
		`select `+orderColumns+` from orders where gateway_order_id = $1`, gatewayOrderID)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:orders: %w", err)
	}
	return order, err
}

// MarkPaid activates an order and records its payment status.
func (r *OrdersRepository) MarkPaid(ctx context.Context, id int64) (*model.Order, error) {
	row := r.db.QueryRow(ctx, `
		update orders set status = $2, payment_status = $3, updated_at = now() where id = $1
		returning `+orderColumns,
		id, model.OrderActive, model.PaymentPaid,
	)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:orders: %w", err)
	}
	return order, err
}

// UpdateStatus transitions an order's status.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	row := r.db.QueryRow(ctx, `
		update orders set status = $2, updated_at = now() where id = $1
		returning `+orderColumns,
		id, status,
	)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:orders: %w", err)
	}
	return order, err
}
