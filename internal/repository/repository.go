// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and scan logic that fetch, persist,
// and update domain records, keeping SQL away from the service layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stellarhost/portal/internal/server"
)

// Querier is the subset of pgx operations repositories execute
// against. Both *pgxpool.Pool and pgx.Tx satisfy it, so the same
// query methods run standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is the container for all repository instances.
type Repositories struct {
	Users     *UsersRepository
	Plans     *PlansRepository
	Servers   *ServersRepository
	Orders    *OrdersRepository
	Invoices  *InvoicesRepository
	Billing   *BillingRepository
	Referrals *ReferralsRepository
	Tickets   *TicketsRepository
	Settings  *SettingsRepository
}

// NewRepositories constructs the repository container over the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:     NewUsersRepository(pool),
		Plans:     NewPlansRepository(pool),
		Servers:   NewServersRepository(pool),
		Orders:    NewOrdersRepository(pool),
		Invoices:  NewInvoicesRepository(pool),
		Billing:   NewBillingRepository(pool),
		Referrals: NewReferralsRepository(pool),
		Tickets:   NewTicketsRepository(pool),
		Settings:  NewSettingsRepository(pool),
	}
}
