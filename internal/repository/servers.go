package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// ServersRepository persists provisioned server records.
type ServersRepository struct {
	db Querier
}

// NewServersRepository constructs a ServersRepository over db.
func NewServersRepository(db Querier) *ServersRepository {
	return &ServersRepository{db: db}
}

const serverColumns = `id, user_id, plan_id, hostname, ip_address, region, status,
	expires_at, created_at, updated_at`

func scanServer(row pgx.Row) (*model.Server, error) {
	var s model.Server
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.Hostname, &s.IPAddress, &s.Region, &s.Status,
		&s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a server record.
func (r *ServersRepository) Create(ctx context.Context, s *model.Server) (*model.Server, error) {
	row := r.db.QueryRow(ctx, `
		insert into servers (user_id, plan_id, hostname, ip_address, region, status, expires_at)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning `+serverColumns,
		s.UserID, s.PlanID, s.Hostname, s.IPAddress, s.Region, s.Status, s.ExpiresAt,
	)
	return scanServer(row)
}

// GetByID fetches a server by primary key.
func (r *ServersRepository) GetByID(ctx context.Context, id int64) (*model.Server, error) {
	row := r.db.QueryRow(ctx, `select `+serverColumns+` from servers where id = $1`, id)
	srv, err := scanServer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:servers: %w", err)
	}
	return srv, err
}

// ListByUser returns the servers owned by one user.
func (r *ServersRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Server, error) {
	rows, err := r.db.Query(ctx, `
		select `+serverColumns+` from servers where user_id = $1 order by created_at desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectServers(rows)
}

// ListAll returns every server record (admin view).
func (r *ServersRepository) ListAll(ctx context.Context) ([]*model.Server, error) {
	rows, err := r.db.Query(ctx, `
		select `+serverColumns+` from servers order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectServers(rows)
}

func collectServers(rows pgx.Rows) ([]*model.Server, error) {
	var servers []*model.Server
	for rows.Next() {
		srv, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, srv)
	}
	return servers, rows.Err()
}

// UpdateStatus transitions a server's lifecycle status.
func (r *ServersRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Server, error) {
	row := r.db.QueryRow(ctx, `
		update servers set status = $2, updated_at = now() where id = $1
		returning `+serverColumns,
		id, status,
	)
	srv, err := scanServer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:servers: %w", err)
	}
	return srv, err
}

// Delete removes a server record.
func (r *ServersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `delete from servers where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:servers: %w", pgx.ErrNoRows)
	}
	return nil
}
