package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// InvoiceService handles the invoice aggregate for one owner account. The
// stored total is always derived from the item set, never taken from the
// request.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	clientRepo  billing.ClientRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, clientRepo billing.ClientRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

// Create creates an invoice with its items in one transactional write.
// The referenced client must exist within the owner's scope.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, req.ClientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
		}
		return nil, err
	}

	invoice, err := billing.NewInvoice(
		ownerID,
		req.ClientID,
		billing.InvoiceStatus(req.Status),
		req.DueDate,
		req.Currency,
		req.IsRecurring,
		req.RecurringInterval,
		toItemInputs(req.Items),
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

// GetByID retrieves an invoice with its items within the owner's scope
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List retrieves the owner's invoices with pagination, search and status
// filtering. An unrecognized status matches no rows rather than failing.
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) (*shared.Page[InvoiceResponse], error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	invoices, meta, err := s.invoiceRepo.ListForOwner(ctx, ownerID, filter.ToListQuery())
	if err != nil {
		return nil, err
	}

	page := shared.NewPage(ToInvoiceResponseList(invoices), meta)
	return &page, nil
}

// Update applies a sparse update to an invoice within the owner's scope.
// A present items list replaces the whole item set and recomputes the
// total; both writes land in one transaction.
func (s *InvoiceService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch := billing.InvoicePatch{
		DueDate:           req.DueDate,
		Currency:          req.Currency,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
	}
	if req.Status != nil {
		status := billing.InvoiceStatus(*req.Status)
		patch.Status = &status
	}
	if req.Items != nil {
		items := toItemInputs(*req.Items)
		patch.Items = &items
	}

	if err := invoice.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice, patch.HasItems()); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

// Delete removes an invoice and its items within the owner's scope. The
// boolean reports whether an invoice was actually deleted.
func (s *InvoiceService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if err := s.invoiceRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
