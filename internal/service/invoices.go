package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// invoiceDueIn is how long a manually issued invoice stays payable.
const invoiceDueIn = 14 * 24 * time.Hour

// InvoiceService manages billing documents.
type InvoiceService struct {
	invoices *repository.InvoicesRepository
	orders   *repository.OrdersRepository
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(repos *repository.Repositories) *InvoiceService {
	return &InvoiceService{
		invoices: repos.Invoices,
		orders:   repos.Orders,
	}
}

// List returns the caller's invoices, or all invoices for admins.
func (s *InvoiceService) List(ctx context.Context, user *model.User) ([]*model.Invoice, error) {
	if user.IsAdmin() {
		return s.invoices.ListAll(ctx)
	}
	return s.invoices.ListByUser(ctx, user.ID)
}

// Get returns one invoice, restricted to the owner unless the caller
// is an admin.
func (s *InvoiceService) Get(ctx context.Context, user *model.User, id int64) (*model.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.UserID != user.ID && !user.IsAdmin() {
		return nil, errs.NewNotFoundError("Invoice not found", true, nil)
	}
	return inv, nil
}

// IssueForOrder creates an issued invoice against an existing order.
// Admin only; the payment flow creates its own paid invoices.
func (s *InvoiceService) IssueForOrder(ctx context.Context, orderID int64, taxAmount decimal.Decimal) (*model.Invoice, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderCancelled {
		return nil, errs.NewBadRequestError("Cannot invoice a cancelled order", true, nil, nil, nil)
	}

	dueAt := time.Now().Add(invoiceDueIn)

	return s.invoices.Create(ctx, &model.Invoice{
		InvoiceNumber: newReferenceNumber("INV"),
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.Amount,
		TaxAmount:     taxAmount,
		TotalAmount:   order.Amount.Add(taxAmount),
		Status:        model.InvoiceIssued,
		DueAt:         &dueAt,
	})
}

// MarkPaid settles an issued invoice. Admin only; used for offline
// payments such as bank transfers.
func (s *InvoiceService) MarkPaid(ctx context.Context, id int64) (*model.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == model.InvoicePaid {
		return nil, errs.NewBadRequestError("Invoice is already paid", true, nil, nil, nil)
	}
	if inv.Status == model.InvoiceVoid {
		return nil, errs.NewBadRequestError("Cannot pay a void invoice", true, nil, nil, nil)
	}

	return s.invoices.MarkPaid(ctx, id)
}
