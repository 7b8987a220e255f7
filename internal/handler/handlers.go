package handler

import (
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

// Handlers groups every HTTP handler so router setup passes one object
// around.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Auth      *AuthHandler
	Plans     *PlanHandler
	Servers   *ServerHandler
	Orders    *OrderHandler
	Invoices  *InvoiceHandler
	Payments  *PaymentHandler
	Referrals *ReferralHandler
	Tickets   *TicketHandler
	Settings  *SettingsHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Auth:      NewAuthHandler(s, services.Auth),
		Plans:     NewPlanHandler(s, services.Plans),
		Servers:   NewServerHandler(s, services.Servers),
		Orders:    NewOrderHandler(s, services.Orders),
		Invoices:  NewInvoiceHandler(s, services.Invoices),
		Payments:  NewPaymentHandler(s, services.Payments),
		Referrals: NewReferralHandler(s, services.Referrals),
		Tickets:   NewTicketHandler(s, services.Tickets),
		Settings:  NewSettingsHandler(s, services.Settings),
	}
}
