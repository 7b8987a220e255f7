package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/errs"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
}

func (p *signupPayload) Validate() error {
	return Struct(p)
}

type pricedPayload struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
}

func (p *pricedPayload) Validate() error {
	if strings.HasPrefix(p.Price, "-") {
		return CustomValidationErrors{{Field: "price", Message: "Must not be negative"}}
	}
	return Struct(p)
}

func newContext(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newContext(t, `{"email":"test@example.com","password":"str0ngenough"}`)
	payload := &signupPayload{}

	err := BindAndValidate(c, payload)

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", payload.Email)
	assert.Equal(t, "str0ngenough", payload.Password)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newContext(t, `{"email": not json`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request body", httpErr.Message)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c := newContext(t, `{"email":"not-an-email","password":"short","role":"superuser"}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 3)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 8 characters", byField["password"])
	assert.Equal(t, "must be one of: customer admin", byField["role"])
}

func TestBindAndValidateMissingRequired(t *testing.T) {
	c := newContext(t, `{}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newContext(t, `{"name":"basic","price":"-10.00"}`)

	err := BindAndValidate(c, &pricedPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "price", httpErr.Errors[0].Field)
	assert.Equal(t, "Must not be negative", httpErr.Errors[0].Error)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0b96ce3e-6b74-4b25-9b3f-2a0f21d0b97a"))
	assert.True(t, IsValidUUID("0B96CE3E-6B74-4B25-9B3F-2A0F21D0B97A"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("0b96ce3e6b744b259b3f2a0f21d0b97a"))
	assert.False(t, IsValidUUID("not-a-uuid"))
}
