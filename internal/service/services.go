// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from handlers, performs domain operations, and calls
// repository methods to interact with the database.
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stellarhost/portal/internal/auth"
	"github.com/stellarhost/portal/internal/lib/payment"
	"github.com/stellarhost/portal/internal/repository"
	"github.com/stellarhost/portal/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Auth      *AuthService
	Plans     *PlanService
	Servers   *ServerService
	Orders    *OrderService
	Invoices  *InvoiceService
	Payments  *PaymentService
	Referrals *ReferralService
	Tickets   *TicketService
	Settings  *SettingsService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokens := auth.NewTokenIssuer(
		s.Config.Auth.SecretKey,
		time.Duration(s.Config.Auth.TokenLifetimeMinutes)*time.Minute,
	)

	gateway := payment.NewClient(s.Config)

	return &Services{
		Auth:      NewAuthService(s, repos, tokens),
		Plans:     NewPlanService(repos),
		Servers:   NewServerService(repos),
		Orders:    NewOrderService(repos),
		Invoices:  NewInvoiceService(repos),
		Payments:  NewPaymentService(s, repos, gateway),
		Referrals: NewReferralService(repos),
		Tickets:   NewTicketService(repos),
		Settings:  NewSettingsService(repos),
	}, nil
}

// newReferenceNumber builds document numbers like ORD-4F9A21C3 from a
// random UUID fragment.
func newReferenceNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// newReferralCode builds the short code users share with friends.
func newReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
