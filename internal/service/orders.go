package service

import (
	"context"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// OrderService exposes read and cancel operations on orders. Orders
// are created by the payment flow, not directly.
type OrderService struct {
	orders *repository.OrdersRepository
}

// NewOrderService constructs an OrderService.
func NewOrderService(repos *repository.Repositories) *OrderService {
	return &OrderService{orders: repos.Orders}
}

// List returns the caller's orders, or every order for admins.
func (s *OrderService) List(ctx context.Context, user *model.User) ([]*model.Order, error) {
	if user.IsAdmin() {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, user.ID)
}

// Get returns one order, restricted to the owner unless the caller is
// an admin.
func (s *OrderService) Get(ctx context.Context, user *model.User, id int64) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, errs.NewNotFoundError("Order not found", true, nil)
	}
	return order, nil
}

// Cancel cancels a pending order. Active orders cannot be cancelled
// here; they go through the refund process instead.
func (s *OrderService) Cancel(ctx context.Context, user *model.User, id int64) (*model.Order, error) {
	order, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderPending {
		return nil, errs.NewBadRequestError("Only pending orders can be cancelled", true, nil, nil, nil)
	}

	return s.orders.UpdateStatus(ctx, id, model.OrderCancelled)
}
