package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// TicketsRepository persists support tickets.
type TicketsRepository struct {
	db Querier
}

// NewTicketsRepository constructs a TicketsRepository over db.
func NewTicketsRepository(db Querier) *TicketsRepository {
	return &TicketsRepository{db: db}
}

const ticketColumns = `id, user_id, subject, body, status, priority,
	created_at, updated_at, closed_at`

func scanTicket(row pgx.Row) (*model.SupportTicket, error) {
	var t model.SupportTicket
	err := row.Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Body, &t.Status, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt, &t.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create opens a new ticket.
func (r *TicketsRepository) Create(ctx context.Context, t *model.SupportTicket) (*model.SupportTicket, error) {
	row := r.db.QueryRow(ctx, `
		insert into support_tickets (user_id, subject, body, priority)
		values ($1, $2, $3, $4)
		returning `+ticketColumns,
		t.UserID, t.Subject, t.Body, t.Priority,
	)
	return scanTicket(row)
}

// GetByID fetches a ticket by primary key.
func (r *TicketsRepository) GetByID(ctx context.Context, id int64) (*model.SupportTicket, error) {
	row := r.db.QueryRow(ctx, `select `+ticketColumns+` from support_tickets where id = $1`, id)
	ticket, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:support_tickets: %w", err)
	}
	return ticket, err
}

// ListByUser returns a user's tickets, newest first.
func (r *TicketsRepository) ListByUser(ctx context.Context, userID int64) ([]*model.SupportTicket, error) {
	rows, err := r.db.Query(ctx, `
		select `+ticketColumns+` from support_tickets
		where user_id = $1 order by created_at desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListAll returns every ticket (admin view), open ones first.
func (r *TicketsRepository) ListAll(ctx context.Context) ([]*model.SupportTicket, error) {
	rows, err := r.db.Query(ctx, `
		select `+ticketColumns+` from support_tickets
		order by status = 'closed', created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows pgx.Rows) ([]*model.SupportTicket, error) {
	var tickets []*model.SupportTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// Update transitions status and priority. Closing stamps closed_at;
// reopening clears it.
func (r *TicketsRepository) Update(ctx context.Context, id int64, status, priority string) (*model.SupportTicket, error) {
	row := r.db.QueryRow(ctx, `
		update support_tickets
		set status = $2,
			priority = $3,
			closed_at = case when $2 = 'closed' then now() else null end,
			updated_at = now()
		where id = $1
		returning `+ticketColumns,
		id, status, priority,
	)
	ticket, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:support_tickets: %w", err)
	}
	return ticket, err
}
