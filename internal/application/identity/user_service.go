package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/identity"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// UserService handles user account management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user account. Email and username must be unique
// across the whole system.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if err := s.checkEmailAvailable(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkUsernameAvailable(ctx, req.Username, uuid.Nil); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Username, req.FullName, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List retrieves users with pagination, search and active-state filtering
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Page[UserResponse], error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	users, meta, err := s.userRepo.List(ctx, filter.ToListQuery())
	if err != nil {
		return nil, err
	}

	page := shared.NewPage(ToUserResponseList(users), meta)
	return &page, nil
}

// Update applies a sparse update to a user. Changing email or username
// re-checks uniqueness against other accounts.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailAvailable(ctx, *req.Email, id); err != nil {
			return nil, err
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		if err := s.checkUsernameAvailable(ctx, *req.Username, id); err != nil {
			return nil, err
		}
	}

	if err := user.Apply(identity.UserPatch{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// Delete removes a user. The boolean reports whether a user was actually
// deleted; a missing user is not an error.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) checkEmailAvailable(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "Email already registered")
	}
	return nil
}

func (s *UserService) checkUsernameAvailable(ctx context.Context, username string, selfID uuid.UUID) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "Username already taken")
	}
	return nil
}
