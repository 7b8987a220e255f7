package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/lib/job"
	"github.com/stellarhost/portal/internal/lib/payment"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
	"github.com/stellarhost/portal/internal/server"
)

// Settings keys holding referral commission rates.
const (
	settingRecurringRate = "referral.recurring_rate"
	settingLongTermRate  = "referral.longterm_rate"
)

// Fallback commission rates when the settings rows are missing.
var (
	defaultRecurringRate = decimal.NewFromFloat(0.05)
	defaultLongTermRate  = decimal.NewFromFloat(0.10)
)

// PaymentService drives the checkout flow: gateway order creation,
// payment verification, webhook reconciliation, and referral
// commission crediting.
type PaymentService struct {
	gateway   *payment.Client
	pool      *pgxpool.Pool
	orders    *repository.OrdersRepository
	invoices  *repository.InvoicesRepository
	billing   *repository.BillingRepository
	referrals *repository.ReferralsRepository
	plans     *repository.PlansRepository
	settings  *repository.SettingsRepository
	job       *job.JobService
	logger    *zerolog.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(s *server.Server, repos *repository.Repositories, gateway *payment.Client) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		pool:      s.DB.Pool,
		orders:    repos.Orders,
		invoices:  repos.Invoices,
		billing:   repos.Billing,
		referrals: repos.Referrals,
		plans:     repos.Plans,
		settings:  repos.Settings,
		job:       s.Job,
		logger:    s.Logger,
	}
}

// CheckoutOrder is what the frontend needs to open the gateway's
// payment widget.
type CheckoutOrder struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	KeyID          string          `json:"key_id"`
	PlanName       string          `json:"plan_name"`
	BillingCycle   string          `json:"billing_cycle"`
}

// CreateOrder prices a plan for the chosen billing cycle and opens an
// order with the payment gateway. Nothing is persisted yet; the local
// order is created on successful verification.
func (s *PaymentService) CreateOrder(ctx context.Context, user *model.User, planID int64, billingCycle string) (*CheckoutOrder, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, errs.NewBadRequestError("Plan is not available for purchase", true, nil, nil, nil)
	}

	amount, ok := plan.PriceFor(billingCycle)
	if !ok {
		return nil, errs.NewBadRequestError("Invalid billing cycle", true, nil, nil, nil)
	}

	notes := map[string]string{
		"user_id":       strconv.FormatInt(user.ID, 10),
		"plan_id":       strconv.FormatInt(plan.ID, 10),
		"billing_cycle": billingCycle,
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amount, newReferenceNumber("RCPT"), notes)
	if err != nil {
		s.logger.Error().Err(err).Int64("plan_id", plan.ID).Msg("gateway order creation failed")
		return nil, errs.NewInternalServerError()
	}

	return &CheckoutOrder{
		GatewayOrderID: gatewayOrder.ID,
		Amount:         amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          s.gateway.KeyID(),
		PlanName:       plan.Name,
		BillingCycle:   billingCycle,
	}, nil
}

// VerifyInput carries the gateway callback fields plus the purchase
// the frontend initiated.
type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	PlanID           int64
	BillingCycle     string
}

// PaymentResult is returned after a verified payment.
type PaymentResult struct {
	Order   *model.Order   `json:"order"`
	Invoice *model.Invoice `json:"invoice"`
}

// VerifyPayment checks the gateway signature and, when valid, records
// the purchase: an active paid order, its paid invoice, and a payment
// ledger entry are written in one transaction. Referral commission and
// the confirmation email are best-effort afterwards.
func (s *PaymentService) VerifyPayment(ctx context.Context, user *model.User, input VerifyInput) (*PaymentResult, error) {
	if !s.gateway.VerifyPaymentSignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		return nil, errs.NewBadRequestError("Invalid payment signature", true, nil, nil, nil)
	}

	plan, err := s.plans.GetByID(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	amount, ok := plan.PriceFor(input.BillingCycle)
	if !ok {
		return nil, errs.NewBadRequestError("Invalid billing cycle", true, nil, nil, nil)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order, err := s.orders.WithTx(tx).Create(ctx, &model.Order{
		OrderNumber:    newReferenceNumber("ORD"),
		UserID:         user.ID,
		PlanID:         plan.ID,
		BillingCycle:   input.BillingCycle,
		Amount:         amount,
		Status:         model.OrderActive,
		PaymentMethod:  "razorpay",
		PaymentStatus:  model.PaymentPaid,
		GatewayOrderID: &input.GatewayOrderID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice, err := s.invoices.WithTx(tx).Create(ctx, &model.Invoice{
		InvoiceNumber: newReferenceNumber("INV"),
		OrderID:       order.ID,
		UserID:        user.ID,
		Amount:        amount,
		TaxAmount:     decimal.Zero,
		TotalAmount:   amount,
		Status:        model.InvoicePaid,
		PaidAt:        &now,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.billing.WithTx(tx).Create(ctx, &model.BillingRecord{
		UserID:           user.ID,
		OrderID:          &order.ID,
		Kind:             model.BillingPayment,
		Amount:           amount,
		Currency:         s.gateway.Currency(),
		GatewayPaymentID: &input.GatewayPaymentID,
		Description:      plan.Name + " (" + input.BillingCycle + ")",
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Commission failure never fails the payment.
	if err := s.creditReferralCommission(ctx, user, order); err != nil {
		s.logger.Error().Err(err).
			Int64("order_id", order.ID).
			Msg("failed to credit referral commission")
	}

	s.enqueueOrderConfirmation(user, order, invoice, plan)

	return &PaymentResult{Order: order, Invoice: invoice}, nil
}

// creditReferralCommission pays the referrer of a user making their
// first payment. Long-term billing cycles (annual and up) earn the
// higher rate. The referral row and the referrer's ledger entry are
// written in one transaction.
func (s *PaymentService) creditReferralCommission(ctx context.Context, user *model.User, order *model.Order) error {
	referral, err := s.referrals.GetPendingByReferred(ctx, user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Not a referred user; most payments land here.
		return nil
	}
	if err != nil {
		return err
	}

	planType := model.PlanTypeRecurring
	if model.IsLongTermCycle(order.BillingCycle) {
		planType = model.PlanTypeLongTerm
	}

	rate := s.commissionRate(ctx, planType)
	commission := order.Amount.Mul(rate).Round(2)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := s.referrals.WithTx(tx).Credit(ctx, referral.ID, order.ID, commission, planType); err != nil {
		return err
	}

	_, err = s.billing.WithTx(tx).Create(ctx, &model.BillingRecord{
		UserID:      referral.ReferrerID,
		OrderID:     &order.ID,
		Kind:        model.BillingCommission,
		Amount:      commission,
		Currency:    s.gateway.Currency(),
		Description: "Referral commission (" + planType + ")",
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// commissionRate reads the configured rate for a plan type, falling
// back to the built-in default when the setting is missing or
// unparsable.
func (s *PaymentService) commissionRate(ctx context.Context, planType string) decimal.Decimal {
	key, fallback := settingRecurringRate, defaultRecurringRate
	if planType == model.PlanTypeLongTerm {
		key, fallback = settingLongTermRate, defaultLongTermRate
	}

	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return fallback
	}

	rate, err := decimal.NewFromString(setting.Value)
	if err != nil {
		s.logger.Warn().Str("key", key).Str("value", setting.Value).Msg("unparsable commission rate setting")
		return fallback
	}
	return rate
}

// webhookEvent is the subset of the gateway webhook body we consume.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook reconciles asynchronous gateway notifications. Only
// payment.captured is acted on: if the referenced order exists and is
// still unpaid (the browser callback was lost), it is marked paid.
// Unknown events are acknowledged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		return errs.NewBadRequestError("Invalid webhook signature", true, nil, nil, nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return errs.NewBadRequestError("Malformed webhook body", true, nil, nil, nil)
	}

	if event.Event != "payment.captured" {
		s.logger.Debug().Str("event", event.Event).Msg("ignoring webhook event")
		return nil
	}

	gatewayOrderID := event.Payload.Payment.Entity.OrderID
	order, err := s.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
	if errors.Is(err, pgx.ErrNoRows) {
		// The browser callback usually creates the order first; a
		// capture for an unknown gateway order is logged, not failed,
		// so the gateway does not retry forever.
		s.logger.Warn().
			Str("gateway_order_id", gatewayOrderID).
			Str("gateway_payment_id", event.Payload.Payment.Entity.ID).
			Msg("webhook capture for unknown order")
		return nil
	}
	if err != nil {
		return err
	}

	if order.PaymentStatus == model.PaymentPaid {
		return nil
	}

	if _, err := s.orders.MarkPaid(ctx, order.ID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("gateway_payment_id", event.Payload.Payment.Entity.ID).
		Msg("order reconciled from webhook")
	return nil
}

// History returns the caller's billing ledger: payments, refunds, and
// referral commissions, newest first.
func (s *PaymentService) History(ctx context.Context, user *model.User) ([]*model.BillingRecord, error) {
	return s.billing.ListByUser(ctx, user.ID)
}

// GatewayConfig is the public checkout configuration.
type GatewayConfig struct {
	KeyID    string `json:"key_id"`
	Currency string `json:"currency"`
}

// Config returns what the frontend needs to initialize the gateway
// widget.
func (s *PaymentService) Config() GatewayConfig {
	return GatewayConfig{
		KeyID:    s.gateway.KeyID(),
		Currency: s.gateway.Currency(),
	}
}

func (s *PaymentService) enqueueOrderConfirmation(user *model.User, order *model.Order, invoice *model.Invoice, plan *model.Plan) {
	firstName := user.FullName
	if i := strings.IndexByte(firstName, ' '); i > 0 {
		firstName = firstName[:i]
	}

	task, err := job.NewOrderConfirmationTask(job.OrderConfirmationPayload{
		To:            user.Email,
		FirstName:     firstName,
		OrderNumber:   order.OrderNumber,
		PlanName:      plan.Name,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        order.Amount.StringFixed(2) + " " + s.gateway.Currency(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build order confirmation task")
		return
	}

	if _, err := s.job.Client.Enqueue(task); err != nil {
		s.logger.Error().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("failed to enqueue order confirmation email")
	}
}
