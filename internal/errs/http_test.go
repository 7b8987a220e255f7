package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", NewUnauthorizedError("nope", true), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("nope", true, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("nope", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	fieldErrs := []FieldError{{Field: "email", Error: "is taken"}}

	err := NewBadRequestError("A User with this Email already exists", true, &code, fieldErrs, nil)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, fieldErrs, err.Errors)
	assert.True(t, err.Override)
}

func TestNotFoundCustomCode(t *testing.T) {
	code := "PLAN_NOT_FOUND"

	err := NewNotFoundError("Plan not found", true, &code)

	assert.Equal(t, code, err.Code)
}

func TestInternalServerErrorHidesDetail(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestErrorAndIs(t *testing.T) {
	err := NewUnauthorizedError("Invalid token", true)

	assert.Equal(t, "Invalid token", err.Error())
	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.False(t, errors.Is(err, errors.New("plain")))
}

func TestWithMessageCopies(t *testing.T) {
	original := NewNotFoundError("Resource not found", false, nil)

	replaced := original.WithMessage("Server not found")

	assert.Equal(t, "Server not found", replaced.Message)
	assert.Equal(t, "Resource not found", original.Message)
	assert.Equal(t, original.Code, replaced.Code)
	assert.Equal(t, original.Status, replaced.Status)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("email must be valid"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: email must be valid", err.Message)
	assert.False(t, err.Override)
}
