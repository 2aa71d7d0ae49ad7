package identity

import (
	"context"
	"errors"

	"github.com/invoiceapp/backend/internal/domain/identity"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/invoiceapp/backend/internal/infrastructure/auth"
)

// AuthService handles credential checks and token issuance
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt}
}

// Login verifies credentials and issues a bearer token. The error for a
// wrong email and a wrong password is identical so callers cannot tell
// which accounts exist. A deactivated account is reported distinctly.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Incorrect email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Incorrect email or password")
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("INACTIVE_ACCOUNT", "Account is deactivated")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue access token")
	}

	return &LoginResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}
