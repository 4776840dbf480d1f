package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/app/services"
	"github.com/teamthree/jobapply/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
	ContextToken     = "token"
)

// AuthMiddleware validates tokens and enforces roles.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   services.IUserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo services.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "UnauthorizedError",
		Message: message,
	})
}

// JWTAuth validates the bearer token and its session row. A valid signature
// with no live session is still rejected: logout and the expiry sweep
// revoke tokens by deleting their sessions.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		session, err := m.userRepo.GetSessionByToken(c.Request.Context(), tokenString)
		if err != nil || time.Now().After(session.ExpiresAt) {
			abortUnauthorized(c, "Session expired or revoked")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// RoleRequired allows only users carrying one of the given roles. Must run
// after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "ForbiddenError",
			Message: "Insufficient permissions",
		})
	}
}
