package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/server"
)

// RateLimitMiddleware throttles credential endpoints per client IP and
// records limit hits as New Relic custom events.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{server: s}
}

// LimitCredentialAttempts allows 5 requests per minute per IP with a
// burst of 5. Applied to login and registration to slow credential
// stuffing.
func (rl *RateLimitMiddleware) LimitCredentialAttempts() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(12 * time.Second),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			rl.RecordRateLimitHit(c.Path())
			return echo.ErrTooManyRequests
		},
	})
}

// RecordRateLimitHit emits a RateLimitHit custom event when the New
// Relic agent is enabled.
func (rl *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if rl.server.LoggerService != nil && rl.server.LoggerService.GetApplication() != nil {
		rl.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
