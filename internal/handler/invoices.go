package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// InvoiceHandler serves billing documents.
type InvoiceHandler struct {
	Handler
	invoices *service.InvoiceService
}

// NewInvoiceHandler constructs an InvoiceHandler.
func NewInvoiceHandler(s *server.Server, invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
	}
}

// List returns the caller's invoices, or all invoices for admins.
func (h *InvoiceHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Invoice, error) {
	return h.invoices.List(c.Request().Context(), middleware.GetUser(c))
}

// Get returns one invoice.
func (h *InvoiceHandler) Get(c echo.Context, req *IDParam) (*model.Invoice, error) {
	return h.invoices.Get(c.Request().Context(), middleware.GetUser(c), req.ID)
}

// Download renders an invoice as a plain-text receipt.
func (h *InvoiceHandler) Download(c echo.Context, req *IDParam) ([]byte, error) {
	inv, err := h.invoices.Get(c.Request().Context(), middleware.GetUser(c), req.ID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "StellarHost Invoice %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Issued: %s\n", inv.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Status: %s\n\n", inv.Status)
	fmt.Fprintf(&b, "Subtotal: %s\n", inv.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Tax:      %s\n", inv.TaxAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total:    %s\n", inv.TotalAmount.StringFixed(2))
	if inv.PaidAt != nil {
		fmt.Fprintf(&b, "\nPaid on %s\n", inv.PaidAt.Format("2006-01-02"))
	} else if inv.DueAt != nil {
		fmt.Fprintf(&b, "\nDue by %s\n", inv.DueAt.Format("2006-01-02"))
	}

	return []byte(b.String()), nil
}

// IssueInvoiceRequest creates an issued invoice against an order.
type IssueInvoiceRequest struct {
	OrderID   int64           `json:"order_id" validate:"required,gt=0"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

func (r *IssueInvoiceRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.TaxAmount.IsNegative() {
		return validation.CustomValidationErrors{{
			Field:   "tax_amount",
			Message: "Must not be negative",
		}}
	}
	return nil
}

// Issue creates an invoice for an order. Admin only.
func (h *InvoiceHandler) Issue(c echo.Context, req *IssueInvoiceRequest) (*model.Invoice, error) {
	return h.invoices.IssueForOrder(c.Request().Context(), req.OrderID, req.TaxAmount)
}

// MarkPaid settles an issued invoice after an offline payment. Admin
// only.
func (h *InvoiceHandler) MarkPaid(c echo.Context, req *IDParam) (*model.Invoice, error) {
	return h.invoices.MarkPaid(c.Request().Context(), req.ID)
}
