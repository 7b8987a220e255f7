package service

import (
	"context"

	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// PlanService manages the hosting plan catalog.
type PlanService struct {
	plans *repository.PlansRepository
}

// NewPlanService constructs a PlanService.
func NewPlanService(repos *repository.Repositories) *PlanService {
	return &PlanService{plans: repos.Plans}
}

// List returns plans. Customers only see active plans; admins can ask
// for the full catalog.
func (s *PlanService) List(ctx context.Context, includeInactive bool) ([]*model.Plan, error) {
	return s.plans.List(ctx, !includeInactive)
}

// Get returns a single plan by id.
func (s *PlanService) Get(ctx context.Context, id int64) (*model.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

// Create adds a plan to the catalog.
func (s *PlanService) Create(ctx context.Context, plan *model.Plan) (*model.Plan, error) {
	return s.plans.Create(ctx, plan)
}

// Update replaces a plan's details and prices.
func (s *PlanService) Update(ctx context.Context, plan *model.Plan) (*model.Plan, error) {
	return s.plans.Update(ctx, plan)
}

// Delete removes a plan. Plans referenced by orders or servers are
// protected by foreign keys; deactivate those instead.
func (s *PlanService) Delete(ctx context.Context, id int64) error {
	return s.plans.Delete(ctx, id)
}
