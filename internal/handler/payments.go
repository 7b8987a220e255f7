package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// webhookSignatureHeader carries the gateway's HMAC over the webhook
// body.
const webhookSignatureHeader = "X-Razorpay-Signature"

// PaymentHandler serves the checkout flow.
type PaymentHandler struct {
	Handler
	payments *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(s *server.Server, payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		Handler:  NewHandler(s),
		payments: payments,
	}
}

// CreatePaymentOrderRequest starts a checkout for a plan.
type CreatePaymentOrderRequest struct {
	PlanID       int64  `json:"plan_id" validate:"required,gt=0"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly quarterly annual biennial triennial"`
}

func (r *CreatePaymentOrderRequest) Validate() error {
	return validation.Struct(r)
}

// CreateOrder opens a gateway order for the chosen plan and cycle.
func (h *PaymentHandler) CreateOrder(c echo.Context, req *CreatePaymentOrderRequest) (*service.CheckoutOrder, error) {
	return h.payments.CreateOrder(c.Request().Context(), middleware.GetUser(c), req.PlanID, req.BillingCycle)
}

// VerifyPaymentRequest carries the gateway callback fields the
// frontend receives after the user completes payment.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature        string `json:"razorpay_signature" validate:"required"`
	PlanID           int64  `json:"plan_id" validate:"required,gt=0"`
	BillingCycle     string `json:"billing_cycle" validate:"required,oneof=monthly quarterly annual biennial triennial"`
}

func (r *VerifyPaymentRequest) Validate() error {
	return validation.Struct(r)
}

// VerifyPayment validates the gateway signature and records the
// purchase.
func (h *PaymentHandler) VerifyPayment(c echo.Context, req *VerifyPaymentRequest) (*service.PaymentResult, error) {
	return h.payments.VerifyPayment(c.Request().Context(), middleware.GetUser(c), service.VerifyInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		PlanID:           req.PlanID,
		BillingCycle:     req.BillingCycle,
	})
}

// Webhook receives asynchronous gateway notifications. The handler
// reads the raw body itself because the signature covers the exact
// bytes, so it bypasses the typed bind pipeline.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.NewBadRequestError("Unreadable request body", false, nil, nil, nil)
	}

	signature := c.Request().Header.Get(webhookSignatureHeader)
	if signature == "" {
		return errs.NewBadRequestError("Missing webhook signature", false, nil, nil, nil)
	}

	if err := h.payments.HandleWebhook(c.Request().Context(), body, signature); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Config returns the public gateway configuration the frontend widget
// needs.
func (h *PaymentHandler) Config(c echo.Context, _ *EmptyRequest) (service.GatewayConfig, error) {
	return h.payments.Config(), nil
}

// History returns the caller's billing ledger.
func (h *PaymentHandler) History(c echo.Context, _ *EmptyRequest) ([]*model.BillingRecord, error) {
	return h.payments.History(c.Request().Context(), middleware.GetUser(c))
}
