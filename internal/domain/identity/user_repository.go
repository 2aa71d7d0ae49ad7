package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users.
// Users are system-wide: listing is not owner-scoped.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, query shared.ListQuery) ([]User, shared.PageMeta, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
