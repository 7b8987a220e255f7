package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// ServerHandler serves provisioned hosting server records.
type ServerHandler struct {
	Handler
	servers *service.ServerService
}

// NewServerHandler constructs a ServerHandler.
func NewServerHandler(s *server.Server, servers *service.ServerService) *ServerHandler {
	return &ServerHandler{
		Handler: NewHandler(s),
		servers: servers,
	}
}

// List returns the caller's servers, or all servers for admins.
func (h *ServerHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Server, error) {
	return h.servers.List(c.Request().Context(), middleware.GetUser(c))
}

// Get returns one server.
func (h *ServerHandler) Get(c echo.Context, req *IDParam) (*model.Server, error) {
	return h.servers.Get(c.Request().Context(), middleware.GetUser(c), req.ID)
}

// CreateServerRequest registers a server record. Admin only.
type CreateServerRequest struct {
	UserID    int64      `json:"user_id" validate:"required,gt=0"`
	PlanID    int64      `json:"plan_id" validate:"required,gt=0"`
	Hostname  string     `json:"hostname" validate:"required,hostname"`
	IPAddress *string    `json:"ip_address" validate:"omitempty,ip"`
	Region    string     `json:"region" validate:"required,min=2,max=50"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *CreateServerRequest) Validate() error {
	return validation.Struct(r)
}

// Create registers a server record against a user and plan.
func (h *ServerHandler) Create(c echo.Context, req *CreateServerRequest) (*model.Server, error) {
	return h.servers.Create(c.Request().Context(), &model.Server{
		UserID:    req.UserID,
		PlanID:    req.PlanID,
		Hostname:  req.Hostname,
		IPAddress: req.IPAddress,
		Region:    req.Region,
		ExpiresAt: req.ExpiresAt,
	})
}

// UpdateServerStatusRequest moves a server through its lifecycle.
type UpdateServerStatusRequest struct {
	IDParam
	Status string `json:"status" validate:"required,oneof=provisioning active suspended terminated"`
}

func (r *UpdateServerStatusRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateStatus transitions a server's status. Admin only.
func (h *ServerHandler) UpdateStatus(c echo.Context, req *UpdateServerStatusRequest) (*model.Server, error) {
	return h.servers.UpdateStatus(c.Request().Context(), req.ID, req.Status)
}

// Delete removes a server record. Admin only.
func (h *ServerHandler) Delete(c echo.Context, req *IDParam) error {
	return h.servers.Delete(c.Request().Context(), req.ID)
}
