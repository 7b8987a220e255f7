package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/repository"
)

// stubQuerier fails every statement with the configured error.
type stubQuerier struct {
	err error
}

func (q stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return stubRow{err: q.err}
}

type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error {
	return r.err
}

func TestRegisterUnknownReferralCode(t *testing.T) {
	svc := &AuthService{
		users: repository.NewUsersRepository(stubQuerier{err: pgx.ErrNoRows}),
	}

	_, err := svc.Register(t.Context(), RegisterInput{
		Email:        "new@example.com",
		Password:     "str0ngenough",
		FullName:     "New User",
		ReferralCode: "ABCD1234",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid referral code", httpErr.Message)
}

func TestRegisterReferrerLookupFailure(t *testing.T) {
	infraErr := errors.New("connection reset by peer")
	svc := &AuthService{
		users: repository.NewUsersRepository(stubQuerier{err: infraErr}),
	}

	_, err := svc.Register(t.Context(), RegisterInput{
		Email:        "new@example.com",
		Password:     "str0ngenough",
		FullName:     "New User",
		ReferralCode: "ABCD1234",
	})

	// Infrastructure failures must not masquerade as a bad referral
	// code; they flow to the error funnel as-is.
	require.ErrorIs(t, err, infraErr)

	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}
