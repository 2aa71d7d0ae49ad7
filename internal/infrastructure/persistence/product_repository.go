package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/models"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/ownership"
	"gorm.io/gorm"
)

var productListSpec = ListSpec{
	SearchColumns: []string{"name", "description"},
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *ownership.OwnedDB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *ownership.OwnedDB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) scoped(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithOwner(ownerID).
		WithContext(ctx).
		Model(&models.ProductModel{})
}

// FindByIDForOwner finds a product by ID within the owner's scope
func (r *GormProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Product, error) {
	var model models.ProductModel
	if err := r.scoped(ctx, ownerID).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForOwner returns one page of the owner's products with count metadata
func (r *GormProductRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]billing.Product, shared.PageMeta, error) {
	base := func() *gorm.DB { return r.scoped(ctx, ownerID) }

	res, err := ResolveList[models.ProductModel](base, productListSpec, query)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}

	products := make([]billing.Product, len(res.Items))
	for i, model := range res.Items {
		products[i] = *model.ToDomain()
	}

	filters := map[string]int64{"all_count": res.UnfilteredTotal}
	return products, shared.NewPageMeta(query, res.FilteredTotal, filters), nil
}

// CountForOwner counts the owner's products
func (r *GormProductRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, ownerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product. Inserts cannot be owner-scoped, so
// this goes through the raw DB; callers resolve the row via
// FindByIDForOwner before updating.
func (r *GormProductRepository) Save(ctx context.Context, product *billing.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.DB().WithContext(ctx).Save(model).Error
}

// DeleteForOwner deletes a product within the owner's scope
func (r *GormProductRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithOwner(ownerID).
		WithContext(ctx).
		Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
