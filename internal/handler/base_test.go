package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/validation"
)

type greetRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *greetRequest) Validate() error {
	return validation.Struct(r)
}

func newJSONContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestHandleWritesJSON(t *testing.T) {
	route := Handle(func(c echo.Context, req *greetRequest) (map[string]string, error) {
		return map[string]string{"greeting": "hello " + req.Name}, nil
	}, http.StatusCreated, func() *greetRequest { return &greetRequest{} })

	c, rec := newJSONContext(t, `{"name":"sam"}`)

	require.NoError(t, route(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello sam")
}

func TestHandleBindFailure(t *testing.T) {
	route := Handle(func(c echo.Context, req *greetRequest) (map[string]string, error) {
		t.Fatal("handler must not run on bind failure")
		return nil, nil
	}, http.StatusOK, func() *greetRequest { return &greetRequest{} })

	c, _ := newJSONContext(t, `{"name": not json`)

	err := route(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestHandleValidationFailure(t *testing.T) {
	route := Handle(func(c echo.Context, req *greetRequest) (map[string]string, error) {
		t.Fatal("handler must not run on validation failure")
		return nil, nil
	}, http.StatusOK, func() *greetRequest { return &greetRequest{} })

	c, _ := newJSONContext(t, `{}`)

	err := route(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleFreshPayloadPerRequest(t *testing.T) {
	var seen []*greetRequest
	route := Handle(func(c echo.Context, req *greetRequest) (map[string]string, error) {
		seen = append(seen, req)
		return nil, nil
	}, http.StatusOK, func() *greetRequest { return &greetRequest{} })

	for _, body := range []string{`{"name":"first"}`, `{"name":"second"}`} {
		c, _ := newJSONContext(t, body)
		require.NoError(t, route(c))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, "first", seen[0].Name)
	assert.Equal(t, "second", seen[1].Name)
}

func TestHandleNoContent(t *testing.T) {
	route := HandleNoContent(func(c echo.Context, req *EmptyRequest) error {
		return nil
	}, http.StatusNoContent, func() *EmptyRequest { return &EmptyRequest{} })

	c, rec := newJSONContext(t, ``)

	require.NoError(t, route(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
