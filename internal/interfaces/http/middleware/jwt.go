package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/identity"
	"github.com/invoiceapp/backend/internal/infrastructure/auth"
	"github.com/invoiceapp/backend/internal/infrastructure/logger"
	"github.com/invoiceapp/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	AuthClaimsKey    = "auth_claims"
	AuthUserIDKey    = "auth_user_id"
	AuthUserEmailKey = "auth_user_email"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// SkipRoute identifies a route that does not require authentication.
// An empty Method matches every method.
type SkipRoute struct {
	Method string
	Path   string
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// UserLoader resolves the token subject to a live account. When set,
	// a missing account rejects the token and a deactivated one is
	// reported distinctly.
	UserLoader func(ctx context.Context, id uuid.UUID) (*identity.User, error)
	// SkipRoutes are routes that don't require authentication
	SkipRoutes []SkipRoute
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
}

// DefaultJWTConfig returns default JWT middleware configuration. Login and
// registration are the only open API routes.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipRoutes: []SkipRoute{
			{Path: "/health"},
			{Path: "/api/v1/health"},
			{Path: "/api/v1/auth/login"},
			{Method: http.MethodPost, Path: "/api/v1/users"},
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with
// custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipRoutes {
			if path == skip.Path && (skip.Method == "" || skip.Method == c.Request.Method) {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			unauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			unauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			unauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			unauthorized(c, "Invalid token subject")
			return
		}

		if cfg.UserLoader != nil {
			user, err := cfg.UserLoader(c.Request.Context(), userID)
			if err != nil {
				unauthorized(c, "Unknown account")
				return
			}
			if !user.IsActive {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse(dto.ErrCodeInactiveAccount, "Account is deactivated"))
				return
			}
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUserEmailKey, claims.Email)

		// Propagate the account ID into the request context so downstream
		// logging and owner scoping can pick it up.
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetAuthUserID returns the authenticated account ID from the gin context,
// or an empty string when the request is unauthenticated
func GetAuthUserID(c *gin.Context) string {
	return c.GetString(AuthUserIDKey)
}

// GetAuthClaims returns the validated token claims from the gin context
func GetAuthClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(AuthClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
