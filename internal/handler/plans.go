package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// PlanHandler serves the hosting plan catalog.
type PlanHandler struct {
	Handler
	plans *service.PlanService
}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler(s *server.Server, plans *service.PlanService) *PlanHandler {
	return &PlanHandler{
		Handler: NewHandler(s),
		plans:   plans,
	}
}

// List returns the catalog. Admin callers also see inactive plans.
func (h *PlanHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Plan, error) {
	user := middleware.GetUser(c)
	includeInactive := user != nil && user.IsAdmin()
	return h.plans.List(c.Request().Context(), includeInactive)
}

// Get returns one plan.
func (h *PlanHandler) Get(c echo.Context, req *IDParam) (*model.Plan, error) {
	return h.plans.Get(c.Request().Context(), req.ID)
}

// PlanRequest carries plan details for create and update.
type PlanRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=100"`
	Slug           string          `json:"slug" validate:"required,min=2,max=100,lowercase"`
	Description    string          `json:"description" validate:"max=2000"`
	CPUCores       int             `json:"cpu_cores" validate:"required,gt=0"`
	MemoryMB       int             `json:"memory_mb" validate:"required,gt=0"`
	StorageGB      int             `json:"storage_gb" validate:"required,gt=0"`
	BandwidthGB    int             `json:"bandwidth_gb" validate:"required,gt=0"`
	MonthlyPrice   decimal.Decimal `json:"monthly_price"`
	QuarterlyPrice decimal.Decimal `json:"quarterly_price"`
	AnnualPrice    decimal.Decimal `json:"annual_price"`
	BiennialPrice  decimal.Decimal `json:"biennial_price"`
	TriennialPrice decimal.Decimal `json:"triennial_price"`
	IsActive       bool            `json:"is_active"`
}

func (r *PlanRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	var custom validation.CustomValidationErrors
	for field, price := range map[string]decimal.Decimal{
		"monthly_price":   r.MonthlyPrice,
		"quarterly_price": r.QuarterlyPrice,
		"annual_price":    r.AnnualPrice,
		"biennial_price":  r.BiennialPrice,
		"triennial_price": r.TriennialPrice,
	} {
		if price.IsNegative() {
			custom = append(custom, validation.CustomValidationError{
				Field:   field,
				Message: "Must not be negative",
			})
		}
	}
	if custom != nil {
		return custom
	}
	return nil
}

func (r *PlanRequest) toModel() *model.Plan {
	return &model.Plan{
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		CPUCores:       r.CPUCores,
		MemoryMB:       r.MemoryMB,
		StorageGB:      r.StorageGB,
		BandwidthGB:    r.BandwidthGB,
		MonthlyPrice:   r.MonthlyPrice,
		QuarterlyPrice: r.QuarterlyPrice,
		AnnualPrice:    r.AnnualPrice,
		BiennialPrice:  r.BiennialPrice,
		TriennialPrice: r.TriennialPrice,
		IsActive:       r.IsActive,
	}
}

// Create adds a plan. Admin only.
func (h *PlanHandler) Create(c echo.Context, req *PlanRequest) (*model.Plan, error) {
	return h.plans.Create(c.Request().Context(), req.toModel())
}

// UpdatePlanRequest is PlanRequest addressed at an existing plan.
type UpdatePlanRequest struct {
	IDParam
	PlanRequest
}

func (r *UpdatePlanRequest) Validate() error {
	if err := r.IDParam.Validate(); err != nil {
		return err
	}
	return r.PlanRequest.Validate()
}

// Update replaces a plan's details. Admin only.
func (h *PlanHandler) Update(c echo.Context, req *UpdatePlanRequest) (*model.Plan, error) {
	plan := req.toModel()
	plan.ID = req.ID
	return h.plans.Update(c.Request().Context(), plan)
}

// Delete removes a plan. Admin only.
func (h *PlanHandler) Delete(c echo.Context, req *IDParam) error {
	return h.plans.Delete(c.Request().Context(), req.ID)
}
