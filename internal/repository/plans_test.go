package repository

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/sqlerr"
)

// fakeRow satisfies pgx.Row with canned values whose types must match
// the scan destinations exactly.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, v := range r.values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// fakeDB satisfies Querier, serving queued rows in order and recording
// every statement it receives.
type fakeDB struct {
	rows    []fakeRow
	execTag pgconn.CommandTag
	execErr error

	statements []string
	args       [][]any
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.statements = append(db.statements, sql)
	db.args = append(db.args, args)
	return db.execTag, db.execErr
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected Query: %s", sql)
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.statements = append(db.statements, sql)
	db.args = append(db.args, args)
	if len(db.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	row := db.rows[0]
	db.rows = db.rows[1:]
	return row
}

func TestPlansCreateReadRoundTrip(t *testing.T) {
	submitted := &model.Plan{
		Name:           "Nebula VPS",
		Slug:           "nebula-vps",
		Description:    "4 vCPU / 8 GB",
		CPUCores:       4,
		MemoryMB:       8192,
		StorageGB:      160,
		BandwidthGB:    2000,
		MonthlyPrice:   decimal.NewFromInt(1499),
		QuarterlyPrice: decimal.NewFromInt(4050),
		AnnualPrice:    decimal.NewFromInt(14990),
		BiennialPrice:  decimal.NewFromInt(26980),
		TriennialPrice: decimal.NewFromInt(35970),
		IsActive:       true,
	}

	now := time.Now()
	stored := []any{
		int64(1), submitted.Name, submitted.Slug, submitted.Description,
		submitted.CPUCores, submitted.MemoryMB, submitted.StorageGB, submitted.BandwidthGB,
		submitted.MonthlyPrice, submitted.QuarterlyPrice, submitted.AnnualPrice,
		submitted.BiennialPrice, submitted.TriennialPrice, submitted.IsActive, now, now,
	}

	db := &fakeDB{rows: []fakeRow{{values: stored}, {values: stored}}}
	repo := NewPlansRepository(db)

	created, err := repo.Create(t.Context(), submitted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, submitted.Slug, created.Slug)
	assert.True(t, created.MonthlyPrice.Equal(submitted.MonthlyPrice))

	// The insert must pass the submitted fields in column order.
	require.Len(t, db.args[0], 13)
	assert.Equal(t, submitted.Name, db.args[0][0])
	assert.Equal(t, submitted.Slug, db.args[0][1])
	assert.Equal(t, submitted.IsActive, db.args[0][12])

	got, err := repo.GetByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []any{created.ID}, db.args[1])
}

func TestPlansGetByIDNotFound(t *testing.T) {
	repo := NewPlansRepository(&fakeDB{})

	_, err := repo.GetByID(t.Context(), 42)

	require.ErrorIs(t, err, pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Plan not found", httpErr.Message)
}

func TestPlansDeleteNotFound(t *testing.T) {
	repo := NewPlansRepository(&fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")})

	err := repo.Delete(t.Context(), 42)

	require.ErrorIs(t, err, pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Plan not found", httpErr.Message)
}

func TestPlansDelete(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewPlansRepository(db)

	require.NoError(t, repo.Delete(t.Context(), 7))
	assert.Equal(t, []any{int64(7)}, db.args[0])
}
