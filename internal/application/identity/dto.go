package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/identity"
	"github.com/invoiceapp/backend/internal/domain/shared"
)

// RegisterUserRequest represents a user registration request
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// UpdateUserRequest represents a user update request; nil fields are left
// untouched
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	IsActive *bool   `json:"is_active"`
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListFilter represents query parameters for listing users
type UserListFilter struct {
	Skip     int    `form:"skip,default=0"`
	Limit    int    `form:"limit,default=100"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserResponseList converts a slice of domain users to response DTOs
func ToUserResponseList(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}

// ToListQuery converts the filter into a domain list query. The is_active
// flag becomes the category filter so repositories can treat it uniformly.
func (f UserListFilter) ToListQuery() shared.ListQuery {
	q := shared.ListQuery{
		Skip:   f.Skip,
		Limit:  f.Limit,
		Search: f.Search,
	}
	if f.IsActive != nil {
		if *f.IsActive {
			q.Category = "true"
		} else {
			q.Category = "false"
		}
	}
	return q
}
