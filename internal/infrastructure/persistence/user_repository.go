package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/identity"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var userListSpec = ListSpec{
	SearchColumns:  []string{"email", "username", "full_name"},
	CategoryColumn: "is_active",
	// is_active is boolean; bind the native type, not the query string
	CategoryValue: func(category string) any {
		active, err := strconv.ParseBool(category)
		if err != nil {
			return category
		}
		return active
	},
}

// GormUserRepository implements UserRepository using GORM.
// Users are system-wide, so no owner scope is applied.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns one page of users with count metadata
func (r *GormUserRepository) List(ctx context.Context, query shared.ListQuery) ([]identity.User, shared.PageMeta, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.UserModel{})
	}

	res, err := ResolveList[models.UserModel](base, userListSpec, query)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}

	users := make([]identity.User, len(res.Items))
	for i, model := range res.Items {
		users[i] = *model.ToDomain()
	}

	var activeCount int64
	if err := base().Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
		return nil, shared.PageMeta{}, err
	}

	filters := map[string]int64{
		"all_count":      res.UnfilteredTotal,
		"active_count":   activeCount,
		"inactive_count": res.UnfilteredTotal - activeCount,
	}
	return users, shared.NewPageMeta(query, res.FilteredTotal, filters), nil
}

// Count counts all users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
