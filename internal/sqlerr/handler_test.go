package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"22P02", InvalidTextRepresentation},
		{"08006", ConnectionFailure},
		{"42601", Other},
		{"", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapCode(tt.sqlstate), tt.sqlstate)
	}
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "USER_ALREADY_EXISTS", generateErrorCode("users", UniqueViolation))
	assert.Equal(t, "PLAN_NOT_FOUND", generateErrorCode("plans", ForeignKeyViolation))
	assert.Equal(t, "ORDER_REQUIRED", generateErrorCode("orders", NotNullViolation))
	assert.Equal(t, "INVOICE_INVALID", generateErrorCode("invoices", CheckViolation))
	assert.Equal(t, "RECORD_ERROR", generateErrorCode("", Other))
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewUnauthorizedError("Invalid email or password", true)

	got := HandleError(original)

	assert.Same(t, original, got)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	got := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorDuplicateReferredUser(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "referrals_referred_id_key"`,
		TableName:      "referrals",
		ConstraintName: "referrals_referred_id_key",
	}

	got := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "REFERRAL_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "orders",
		ConstraintName: "orders_plan_id_fkey",
	}

	got := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ORDER_NOT_FOUND", httpErr.Code)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "users",
		ColumnName: "full_name",
	}

	got := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "full_name", httpErr.Errors[0].Field)
}

func TestHandleErrorUnclassifiedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601", Severity: "ERROR"}

	got := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleErrorNoRowsWithTableAnnotation(t *testing.T) {
	err := fmt.Errorf("table:plans: %w", pgx.ErrNoRows)

	got := HandleError(err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Plan not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutAnnotation(t *testing.T) {
	got := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorUnknown(t *testing.T) {
	got := HandleError(errors.New("connection refused"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestConvertPgErrorUnwraps(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "users"}

	converted := ConvertPgError(pgErr)

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)

	var unwrapped *pgconn.PgError
	assert.ErrorAs(t, converted, &unwrapped)
	assert.Equal(t, UniqueViolation, ErrCode(converted))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "code", extractColumnForUniqueViolation("unique_referrals_code"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_users"))
}
