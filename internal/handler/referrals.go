package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

// ReferralHandler serves the referral program endpoints.
type ReferralHandler struct {
	Handler
	referrals *service.ReferralService
}

// NewReferralHandler constructs a ReferralHandler.
func NewReferralHandler(s *server.Server, referrals *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		Handler:   NewHandler(s),
		referrals: referrals,
	}
}

// Stats returns the caller's referral code and program standing.
func (h *ReferralHandler) Stats(c echo.Context, _ *EmptyRequest) (*model.ReferralStats, error) {
	return h.referrals.Stats(c.Request().Context(), middleware.GetUser(c))
}

// Earnings lists the caller's referrals with commission detail.
func (h *ReferralHandler) Earnings(c echo.Context, _ *EmptyRequest) ([]*model.Referral, error) {
	return h.referrals.Earnings(c.Request().Context(), middleware.GetUser(c))
}
