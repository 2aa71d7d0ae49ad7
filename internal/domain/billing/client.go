package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// Client is a tenant-owned billing counterparty
type Client struct {
	shared.OwnedEntity
	Name    string
	Email   string
	Address string
}

// NewClient creates a new client owned by the given user
func NewClient(userID uuid.UUID, name, email, address string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client email cannot be empty")
	}
	return &Client{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Name:        name,
		Email:       strings.ToLower(email),
		Address:     address,
	}, nil
}

// Apply merges a patch into the client; absent fields are left untouched
func (c *Client) Apply(patch ClientPatch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
		}
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		if *patch.Email == "" {
			return shared.NewDomainError("INVALID_INPUT", "Client email cannot be empty")
		}
		c.Email = strings.ToLower(*patch.Email)
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	c.UpdatedAt = time.Now()
	return nil
}

// ClientPatch is a sparse update; nil fields mean "leave unchanged"
type ClientPatch struct {
	Name    *string
	Email   *string
	Address *string
}

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Client, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]Client, shared.PageMeta, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, client *Client) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
