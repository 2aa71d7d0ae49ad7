package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// ProductService handles product management for one owner account
type ProductService struct {
	productRepo billing.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo billing.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product owned by the given user
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := billing.NewProduct(ownerID, req.Name, req.Description, req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product within the owner's scope
func (s *ProductService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves the owner's products with pagination and search
func (s *ProductService) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) (*shared.Page[ProductResponse], error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	products, meta, err := s.productRepo.ListForOwner(ctx, ownerID, filter.ToListQuery())
	if err != nil {
		return nil, err
	}

	page := shared.NewPage(ToProductResponseList(products), meta)
	return &page, nil
}

// Update applies a sparse update to a product within the owner's scope
func (s *ProductService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := product.Apply(billing.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
	}); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete removes a product within the owner's scope. The boolean reports
// whether a product was actually deleted; a missing product is not an error.
func (s *ProductService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if err := s.productRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
