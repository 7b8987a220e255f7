package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/stellarhost/portal/internal/auth"
	"github.com/stellarhost/portal/internal/logger"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
)

const (
	// UserKey stores the authenticated *model.User in the Echo context.
	UserKey = "user"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path, ip, New Relic trace ids when a transaction exists, and
// user identity when auth already ran. The logger is stored in both
// the Echo context and the request's context.Context so repository
// code can reach it too.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer constructs a ContextEnhancer.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. It must run after
// RequestID and, to pick up user fields, after auth.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if user := GetUser(c); user != nil {
				contextLogger = contextLogger.With().
					Int64("user_id", user.ID).
					Str("user_role", user.Role).
					Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUser retrieves the authenticated user from the Echo context, or
// nil on unauthenticated routes.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	if user, ok := auth.UserFromContext(c.Request().Context()); ok {
		return user
	}
	return nil
}

// GetUserID returns the authenticated user's id as a string for log
// and trace correlation; empty when unauthenticated.
func GetUserID(c echo.Context) string {
	if user := GetUser(c); user != nil {
		return strconv.FormatInt(user.ID, 10)
	}
	return ""
}

// GetLogger retrieves the request-scoped logger, falling back to a
// no-op logger when EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
