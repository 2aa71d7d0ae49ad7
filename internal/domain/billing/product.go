package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a tenant-owned sellable item or service
type Product struct {
	shared.OwnedEntity
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
}

// NewProduct creates a new product owned by the given user
func NewProduct(userID uuid.UUID, name, description string, price decimal.Decimal, currency string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
	}
	return &Product{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Name:        name,
		Description: description,
		Price:       price,
		Currency:    currency,
	}, nil
}

// Apply merges a patch into the product; absent fields are left untouched
func (p *Product) Apply(patch ProductPatch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
		}
		p.Price = *patch.Price
	}
	if patch.Currency != nil {
		if len(*patch.Currency) != 3 {
			return shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
		}
		p.Currency = *patch.Currency
	}
	p.UpdatedAt = time.Now()
	return nil
}

// ProductPatch is a sparse update; nil fields mean "leave unchanged"
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Currency    *string
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]Product, shared.PageMeta, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
