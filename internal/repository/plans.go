package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// PlansRepository persists hosting plans.
type PlansRepository struct {
	db Querier
}

// NewPlansRepository constructs a PlansRepository over db.
func NewPlansRepository(db Querier) *PlansRepository {
	return &PlansRepository{db: db}
}

const planColumns = `id, name, slug, description, cpu_cores, memory_mb, storage_gb,
	bandwidth_gb, monthly_price, quarterly_price, annual_price, biennial_price,
	triennial_price, is_active, created_at, updated_at`

func scanPlan(row pgx.Row) (*model.Plan, error) {
	var p model.Plan
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.CPUCores, &p.MemoryMB, &p.StorageGB,
		&p.BandwidthGB, &p.MonthlyPrice, &p.QuarterlyPrice, &p.AnnualPrice, &p.BiennialPrice,
		&p.TriennialPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new plan.
func (r *PlansRepository) Create(ctx context.Context, p *model.Plan) (*model.Plan, error) {
	row := r.db.QueryRow(ctx, `
		insert into plans (name, slug, description, cpu_cores, memory_mb, storage_gb,
			bandwidth_gb, monthly_price, quarterly_price, annual_price, biennial_price,
			triennial_price, is_active)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		returning `+planColumns,
		p.Name, p.Slug, p.Description, p.CPUCores, p.MemoryMB, p.StorageGB,
		p.BandwidthGB, p.MonthlyPrice, p.QuarterlyPrice, p.AnnualPrice, p.BiennialPrice,
		p.TriennialPrice, p.IsActive,
	)
	return scanPlan(row)
}

// GetByID fetches a plan by primary key.
func (r *PlansRepository) GetByID(ctx context.Context, id int64) (*model.Plan, error) {
	row := r.db.QueryRow(ctx, `select `+planColumns+` from plans where id = $1`, id)
	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:plans: %w", err)
	}
	return plan, err
}

// List returns plans ordered by monthly price. When activeOnly is
// set, retired plans are excluded.
func (r *PlansRepository) List(ctx context.Context, activeOnly bool) ([]*model.Plan, error) {
	query := `select ` + planColumns + ` from plans`
	if activeOnly {
		query += ` where is_active`
	}
	query += ` order by monthly_price asc`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*model.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Update replaces all mutable fields of a plan.
func (r *PlansRepository) Update(ctx context.Context, p *model.Plan) (*model.Plan, error) {
	row := r.db.QueryRow(ctx, `
		update plans
		set name = $2, slug = $3, description = $4, cpu_cores = $5, memory_mb = $6,
			storage_gb = $7, bandwidth_gb = $8, monthly_price = $9, quarterly_price = $10,
			annual_price = $11, biennial_price = $12, triennial_price = $13,
			is_active = $14, updated_at = now()
		where id = $1
		returning `+planColumns,
		p.ID, p.Name, p.Slug, p.Description, p.CPUCores, p.MemoryMB,
		p.StorageGB, p.BandwidthGB, p.MonthlyPrice, p.QuarterlyPrice,
		p.AnnualPrice, p.BiennialPrice, p.TriennialPrice, p.IsActive,
	)
	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:plans: %w", err)
	}
	return plan, err
}

// Delete removes a plan. Plans referenced by orders or servers fail
// with a foreign-key violation, which sqlerr maps for the client.
func (r *PlansRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `delete from plans where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:plans: %w", pgx.ErrNoRows)
	}
	return nil
}
