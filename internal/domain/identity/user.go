package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/invoiceapp/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User is the authenticated principal. Every owned resource carries a
// reference to exactly one user; users themselves are system-wide and
// not scoped to an owner.
type User struct {
	shared.BaseEntity
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	IsActive     bool
}

// NewUser creates a new active user with a hashed password
func NewUser(email, username, fullName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid email format")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username must be between 3 and 50 characters")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Full name cannot be empty")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		IsActive:     true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored password hash
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// Apply merges a patch into the user; absent fields are left untouched
func (u *User) Apply(patch UserPatch) error {
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !emailPattern.MatchString(email) {
			return shared.NewDomainError("INVALID_INPUT", "Invalid email format")
		}
		u.Email = email
	}
	if patch.Username != nil {
		if len(*patch.Username) < 3 || len(*patch.Username) > 50 {
			return shared.NewDomainError("INVALID_INPUT", "Username must be between 3 and 50 characters")
		}
		u.Username = *patch.Username
	}
	if patch.FullName != nil {
		if *patch.FullName == "" {
			return shared.NewDomainError("INVALID_INPUT", "Full name cannot be empty")
		}
		u.FullName = *patch.FullName
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		if err := u.SetPassword(*patch.Password); err != nil {
			return err
		}
	}
	u.UpdatedAt = time.Now()
	return nil
}

// UserPatch is a sparse update; nil fields mean "leave unchanged"
type UserPatch struct {
	Email    *string
	Username *string
	FullName *string
	Password *string
	IsActive *bool
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
