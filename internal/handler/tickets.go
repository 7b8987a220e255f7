package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// TicketHandler serves support tickets.
type TicketHandler struct {
	Handler
	tickets *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(s *server.Server, tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{
		Handler: NewHandler(s),
		tickets: tickets,
	}
}

// CreateTicketRequest opens a support ticket.
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"required,min=10,max=10000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

func (r *CreateTicketRequest) Validate() error {
	return validation.Struct(r)
}

// Create opens a ticket for the caller.
func (h *TicketHandler) Create(c echo.Context, req *CreateTicketRequest) (*model.SupportTicket, error) {
	return h.tickets.Create(c.Request().Context(), middleware.GetUser(c), req.Subject, req.Body, req.Priority)
}

// List returns the caller's tickets, or all tickets for admins.
func (h *TicketHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.SupportTicket, error) {
	return h.tickets.List(c.Request().Context(), middleware.GetUser(c))
}

// Get returns one ticket.
func (h *TicketHandler) Get(c echo.Context, req *IDParam) (*model.SupportTicket, error) {
	return h.tickets.Get(c.Request().Context(), middleware.GetUser(c), req.ID)
}

// UpdateTicketRequest changes status and/or priority.
type UpdateTicketRequest struct {
	IDParam
	Status   string `json:"status" validate:"omitempty,oneof=open in_progress closed"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

func (r *UpdateTicketRequest) Validate() error {
	return validation.Struct(r)
}

// Update changes a ticket. Admins can set anything; customers may only
// close their own tickets.
func (h *TicketHandler) Update(c echo.Context, req *UpdateTicketRequest) (*model.SupportTicket, error) {
	return h.tickets.Update(c.Request().Context(), middleware.GetUser(c), req.ID, req.Status, req.Priority)
}
