package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

// OrderHandler serves purchase orders.
type OrderHandler struct {
	Handler
	orders *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
	}
}

// List returns the caller's orders, or all orders for admins.
func (h *OrderHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Order, error) {
	return h.orders.List(c.Request().Context(), middleware.GetUser(c))
}

// Get returns one order.
func (h *OrderHandler) Get(c echo.Context, req *IDParam) (*model.Order, error) {
	return h.orders.Get(c.Request().Context(), middleware.GetUser(c), req.ID)
}

// Cancel cancels a pending order.
func (h *OrderHandler) Cancel(c echo.Context, req *IDParam) (*model.Order, error) {
	return h.orders.Cancel(c.Request().Context(), middleware.GetUser(c), req.ID)
}
