// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/handler"
	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/server"
)

// New builds the Echo instance: global middleware in dependency order,
// the global error handler, system routes, and the versioned API.
func New(s *server.Server, mws *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	// Order matters: request id first so every later middleware can
	// correlate, tracing before the context enhancer so trace ids land
	// in the request logger, recover innermost of the globals.
	e.Use(middleware.RequestID())
	e.Use(trustedHosts(s.Config.Server.TrustedHosts))
	e.Use(mws.Tracing.NewRelicMiddleware())
	e.Use(mws.ContextEnhancer.EnhanceContext())
	e.Use(mws.Tracing.EnhanceTracing())
	e.Use(mws.Global.RequestLogger())
	e.Use(mws.Global.Recover())
	e.Use(mws.Global.Secure())
	e.Use(mws.Global.CORS())

	registerSystemRoutes(e, s, h)
	registerV1Routes(e, mws, h)

	return e
}

// trustedHosts rejects requests whose Host header is not in the allow
// list. An empty list disables the check.
func trustedHosts(hosts []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(hosts))
	for _, host := range hosts {
		allowed[host] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}
			if _, ok := allowed[c.Request().Host]; !ok {
				return errs.NewBadRequestError("Invalid host header", false, nil, nil, nil)
			}
			return next(c)
		}
	}
}

// registerV1Routes wires the /api/v1 business endpoints.
func registerV1Routes(e *echo.Echo, mws *middleware.Middlewares, h *handler.Handlers) {
	v1 := e.Group("/api/v1")

	requireAuth := mws.Auth.RequireAuth
	requireAdmin := mws.Auth.RequireAdmin
	optionalAuth := mws.Auth.OptionalAuth

	// Auth. Credential endpoints are rate limited per IP.
	credLimit := mws.RateLimit.LimitCredentialAttempts()
	auth := v1.Group("/auth")
	auth.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated,
		func() *handler.RegisterRequest { return &handler.RegisterRequest{} }), credLimit)
	auth.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK,
		func() *handler.LoginRequest { return &handler.LoginRequest{} }), credLimit)
	auth.GET("/me", handler.Handle(h.Auth.Me, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }), requireAuth)
	auth.PUT("/me", handler.Handle(h.Auth.UpdateProfile, http.StatusOK,
		func() *handler.UpdateProfileRequest { return &handler.UpdateProfileRequest{} }), requireAuth)
	auth.DELETE("/me", handler.HandleNoContent(h.Auth.Deactivate, http.StatusNoContent,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }), requireAuth)

	// Plans. Reads are public; catalog management is admin.
	plans := v1.Group("/plans")
	plans.GET("", handler.Handle(h.Plans.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }), optionalAuth)
	plans.GET("/:id", handler.Handle(h.Plans.Get, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))
	plans.POST("", handler.Handle(h.Plans.Create, http.StatusCreated,
		func() *handler.PlanRequest { return &handler.PlanRequest{} }), requireAuth, requireAdmin)
	plans.PUT("/:id", handler.Handle(h.Plans.Update, http.StatusOK,
		func() *handler.UpdatePlanRequest { return &handler.UpdatePlanRequest{} }), requireAuth, requireAdmin)
	plans.DELETE("/:id", handler.HandleNoContent(h.Plans.Delete, http.StatusNoContent,
		func() *handler.IDParam { return &handler.IDParam{} }), requireAuth, requireAdmin)

	// Servers.
	servers := v1.Group("/servers", requireAuth)
	servers.GET("", handler.Handle(h.Servers.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	servers.GET("/:id", handler.Handle(h.Servers.Get, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))
	servers.POST("", handler.Handle(h.Servers.Create, http.StatusCreated,
		func() *handler.CreateServerRequest { return &handler.CreateServerRequest{} }), requireAdmin)
	servers.PATCH("/:id/status", handler.Handle(h.Servers.UpdateStatus, http.StatusOK,
		func() *handler.UpdateServerStatusRequest { return &handler.UpdateServerStatusRequest{} }), requireAdmin)
	servers.DELETE("/:id", handler.HandleNoContent(h.Servers.Delete, http.StatusNoContent,
		func() *handler.IDParam { return &handler.IDParam{} }), requireAdmin)

	// Orders.
	orders := v1.Group("/orders", requireAuth)
	orders.GET("", handler.Handle(h.Orders.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	orders.GET("/:id", handler.Handle(h.Orders.Get, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))
	orders.POST("/:id/cancel", handler.Handle(h.Orders.Cancel, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))

	// Invoices.
	invoices := v1.Group("/invoices", requireAuth)
	invoices.GET("", handler.Handle(h.Invoices.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	invoices.GET("/:id", handler.Handle(h.Invoices.Get, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))
	invoices.GET("/:id/download", handler.HandleFile(h.Invoices.Download, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }, "invoice.txt", "text/plain"))
	invoices.POST("", handler.Handle(h.Invoices.Issue, http.StatusCreated,
		func() *handler.IssueInvoiceRequest { return &handler.IssueInvoiceRequest{} }), requireAdmin)
	invoices.POST("/:id/pay", handler.Handle(h.Invoices.MarkPaid, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }), requireAdmin)

	// Payments. The webhook and widget config are unauthenticated: the
	// gateway signs its own requests.
	payments := v1.Group("/payments")
	payments.GET("/config", handler.Handle(h.Payments.Config, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	payments.GET("/history", handler.Handle(h.Payments.History, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }), requireAuth)
	payments.POST("/webhook", h.Payments.Webhook)
	payments.POST("/create-order", handler.Handle(h.Payments.CreateOrder, http.StatusCreated,
		func() *handler.CreatePaymentOrderRequest { return &handler.CreatePaymentOrderRequest{} }), requireAuth)
	payments.POST("/verify", handler.Handle(h.Payments.VerifyPayment, http.StatusCreated,
		func() *handler.VerifyPaymentRequest { return &handler.VerifyPaymentRequest{} }), requireAuth)

	// Referrals.
	referrals := v1.Group("/referrals", requireAuth)
	referrals.GET("/me", handler.Handle(h.Referrals.Stats, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	referrals.GET("/earnings", handler.Handle(h.Referrals.Earnings, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))

	// Support tickets.
	tickets := v1.Group("/tickets", requireAuth)
	tickets.POST("", handler.Handle(h.Tickets.Create, http.StatusCreated,
		func() *handler.CreateTicketRequest { return &handler.CreateTicketRequest{} }))
	tickets.GET("", handler.Handle(h.Tickets.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }))
	tickets.GET("/:id", handler.Handle(h.Tickets.Get, http.StatusOK,
		func() *handler.IDParam { return &handler.IDParam{} }))
	tickets.PATCH("/:id", handler.Handle(h.Tickets.Update, http.StatusOK,
		func() *handler.UpdateTicketRequest { return &handler.UpdateTicketRequest{} }))

	// Settings.
	settings := v1.Group("/settings")
	settings.GET("", handler.Handle(h.Settings.List, http.StatusOK,
		func() *handler.EmptyRequest { return &handler.EmptyRequest{} }), optionalAuth)
	settings.PUT("/:key", handler.Handle(h.Settings.Upsert, http.StatusOK,
		func() *handler.UpsertSettingRequest { return &handler.UpsertSettingRequest{} }), requireAuth, requireAdmin)
}
