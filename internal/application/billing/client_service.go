package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// ClientService handles client management for one owner account
type ClientService struct {
	clientRepo billing.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo billing.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client owned by the given user
func (s *ClientService) Create(ctx context.Context, ownerID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := billing.NewClient(ownerID, req.Name, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// GetByID retrieves a client within the owner's scope
func (s *ClientService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// List retrieves the owner's clients with pagination and search
func (s *ClientService) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) (*shared.Page[ClientResponse], error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	clients, meta, err := s.clientRepo.ListForOwner(ctx, ownerID, filter.ToListQuery())
	if err != nil {
		return nil, err
	}

	page := shared.NewPage(ToClientResponseList(clients), meta)
	return &page, nil
}

// Update applies a sparse update to a client within the owner's scope
func (s *ClientService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := client.Apply(billing.ClientPatch{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// Delete removes a client within the owner's scope. The boolean reports
// whether a client was actually deleted; a missing client is not an error.
func (s *ClientService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if err := s.clientRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
