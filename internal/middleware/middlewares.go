package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

// Middlewares groups the middleware components used by the HTTP
// server, so routing code gets them from one place with their shared
// dependencies already wired.
type Middlewares struct {
	// Global holds the cross-cutting middleware: CORS, request
	// logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// Auth enforces bearer-token authentication and role checks.
	Auth *AuthMiddleware

	// ContextEnhancer attaches a request-scoped logger carrying
	// request_id, method, path, ip, and user/trace metadata.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic transactions and enriches them with
	// custom attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles credential endpoints.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs every middleware component. The New Relic
// application is taken from the server's LoggerService and is nil when
// the agent is disabled, in which case tracing degrades to a no-op.
func NewMiddlewares(s *server.Server, services *service.Services) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, services.Auth),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
