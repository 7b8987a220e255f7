package service

import (
	"context"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// ServerService manages provisioned hosting servers.
type ServerService struct {
	servers *repository.ServersRepository
}

// NewServerService constructs a ServerService.
func NewServerService(repos *repository.Repositories) *ServerService {
	return &ServerService{servers: repos.Servers}
}

// List returns the caller's servers, or every server for admins.
func (s *ServerService) List(ctx context.Context, user *model.User) ([]*model.Server, error) {
	if user.IsAdmin() {
		return s.servers.ListAll(ctx)
	}
	return s.servers.ListByUser(ctx, user.ID)
}

// Get returns one server. Customers only see their own; a foreign id
// reads the same as a missing one.
func (s *ServerService) Get(ctx context.Context, user *model.User, id int64) (*model.Server, error) {
	srv, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if srv.UserID != user.ID && !user.IsAdmin() {
		return nil, errs.NewNotFoundError("Server not found", true, nil)
	}
	return srv, nil
}

// Create registers a server record. Admin only; provisioning itself
// happens out of band.
func (s *ServerService) Create(ctx context.Context, srv *model.Server) (*model.Server, error) {
	if srv.Status == "" {
		srv.Status = model.ServerProvisioning
	}
	return s.servers.Create(ctx, srv)
}

// UpdateStatus moves a server through its lifecycle. Admin only.
func (s *ServerService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Server, error) {
	return s.servers.UpdateStatus(ctx, id, status)
}

// Delete removes a server record. Admin only.
func (s *ServerService) Delete(ctx context.Context, id int64) error {
	return s.servers.Delete(ctx, id)
}
