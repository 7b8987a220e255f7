package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// SettingsHandler serves portal configuration rows.
type SettingsHandler struct {
	Handler
	settings *service.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(s *server.Server, settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		Handler:  NewHandler(s),
		settings: settings,
	}
}

// List returns settings: public rows for everyone, all rows for
// admins.
func (h *SettingsHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Setting, error) {
	return h.settings.List(c.Request().Context(), middleware.GetUser(c))
}

// UpsertSettingRequest creates or replaces a setting.
type UpsertSettingRequest struct {
	Key      string `param:"key" validate:"required,min=2,max=100"`
	Value    string `json:"value" validate:"required,max=2000"`
	IsPublic bool   `json:"is_public"`
}

func (r *UpsertSettingRequest) Validate() error {
	return validation.Struct(r)
}

// Upsert writes a setting. Admin only.
func (h *SettingsHandler) Upsert(c echo.Context, req *UpsertSettingRequest) (*model.Setting, error) {
	return h.settings.Upsert(c.Request().Context(), req.Key, req.Value, req.IsPublic)
}
