package service

import (
	"context"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// TicketService manages support tickets.
type TicketService struct {
	tickets *repository.TicketsRepository
}

// NewTicketService constructs a TicketService.
func NewTicketService(repos *repository.Repositories) *TicketService {
	return &TicketService{tickets: repos.Tickets}
}

// Create opens a ticket for the caller.
func (s *TicketService) Create(ctx context.Context, user *model.User, subject, body, priority string) (*model.SupportTicket, error) {
	if priority == "" {
		priority = model.PriorityNormal
	}

	return s.tickets.Create(ctx, &model.SupportTicket{
		UserID:   user.ID,
		Subject:  subject,
		Body:     body,
		Status:   model.TicketOpen,
		Priority: priority,
	})
}

// List returns the caller's tickets, or every ticket for admins.
func (s *TicketService) List(ctx context.Context, user *model.User) ([]*model.SupportTicket, error) {
	if user.IsAdmin() {
		return s.tickets.ListAll(ctx)
	}
	return s.tickets.ListByUser(ctx, user.ID)
}

// Get returns one ticket, restricted to the owner unless the caller is
// an admin.
func (s *TicketService) Get(ctx context.Context, user *model.User, id int64) (*model.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != user.ID && !user.IsAdmin() {
		return nil, errs.NewNotFoundError("Ticket not found", true, nil)
	}
	return ticket, nil
}

// Update changes a ticket's status or priority. Admins can set both;
// customers may only close their own tickets.
func (s *TicketService) Update(ctx context.Context, user *model.User, id int64, status, priority string) (*model.SupportTicket, error) {
	ticket, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		if status != model.TicketClosed || priority != "" {
			return nil, errs.NewForbiddenError("Only closing your own ticket is allowed", true)
		}
	}

	if status == "" {
		status = ticket.Status
	}
	if priority == "" {
		priority = ticket.Priority
	}

	return s.tickets.Update(ctx, id, status, priority)
}
