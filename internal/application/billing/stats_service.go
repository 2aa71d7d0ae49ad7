package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/identity"
)

// StatsService aggregates dashboard counters for one owner account
type StatsService struct {
	clientRepo  billing.ClientRepository
	productRepo billing.ProductRepository
	invoiceRepo billing.InvoiceRepository
	userRepo    identity.UserRepository
}

// NewStatsService creates a new stats service
func NewStatsService(clientRepo billing.ClientRepository, productRepo billing.ProductRepository, invoiceRepo billing.InvoiceRepository, userRepo identity.UserRepository) *StatsService {
	return &StatsService{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
	}
}

// Overview returns resource totals and a per-status invoice breakdown for
// the owner. The users counter is system-wide; everything else is scoped
// to the owner. Every recognized status appears in the breakdown,
// zero-filled.
func (s *StatsService) Overview(ctx context.Context, ownerID uuid.UUID) (*StatsResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.CountForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.CountForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.CountForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.invoiceRepo.StatusCountsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalUsers:       users,
		TotalClients:     clients,
		TotalProducts:    products,
		TotalInvoices:    invoices,
		InvoicesByStatus: byStatus,
	}, nil
}
