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

var clientListSpec = ListSpec{
	SearchColumns: []string{"name", "email"},
}

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *ownership.OwnedDB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *ownership.OwnedDB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) scoped(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithOwner(ownerID).
		WithContext(ctx).
		Model(&models.ClientModel{})
}

// FindByIDForOwner finds a client by ID within the owner's scope
func (r *GormClientRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Client, error) {
	var model models.ClientModel
	if err := r.scoped(ctx, ownerID).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForOwner returns one page of the owner's clients with count metadata
func (r *GormClientRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]billing.Client, shared.PageMeta, error) {
	base := func() *gorm.DB { return r.scoped(ctx, ownerID) }

	res, err := ResolveList[models.ClientModel](base, clientListSpec, query)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}

	clients := make([]billing.Client, len(res.Items))
	for i, model := range res.Items {
		clients[i] = *model.ToDomain()
	}

	filters := map[string]int64{"all_count": res.UnfilteredTotal}
	return clients, shared.NewPageMeta(query, res.FilteredTotal, filters), nil
}

// CountForOwner counts the owner's clients
func (r *GormClientRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, ownerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a client. Inserts cannot be owner-scoped, so
// this goes through the raw DB; callers resolve the row via
// FindByIDForOwner before updating.
func (r *GormClientRepository) Save(ctx context.Context, client *billing.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.DB().WithContext(ctx).Save(model).Error
}

// DeleteForOwner deletes a client within the owner's scope
func (r *GormClientRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithOwner(ownerID).
		WithContext(ctx).
		Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
