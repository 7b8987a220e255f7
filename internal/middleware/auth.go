package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/auth"
	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

// AuthMiddleware enforces bearer-token authentication and role checks.
type AuthMiddleware struct {
	server *server.Server
	auths  *service.AuthService
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auths *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auths:  auths,
	}
}

// RequireAuth authenticates the Authorization: Bearer token, loads the
// account, and stores it in both the Echo context and the request
// context. Tokens for deleted accounts fail with not-found; inactive
// accounts fail with 401.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		user, err := am.auths.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(UserKey, user)
		c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))

		return next(c)
	}
}

// RequireAdmin allows only admin accounts through. It must run after
// RequireAuth.
func (am *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		if !user.IsAdmin() {
			return errs.NewForbiddenError("Admin access required", true)
		}
		return next(c)
	}
}

// OptionalAuth resolves the bearer token when one is present but lets
// anonymous requests through. Used on routes whose response broadens
// for authenticated callers.
func (am *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}

		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		user, err := am.auths.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(UserKey, user)
		c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errs.NewUnauthorizedError("Missing authorization header", false)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errs.NewUnauthorizedError("Malformed authorization header", false)
	}

	return token, nil
}
