package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/auth"
	"github.com/orders/backend/internal/interfaces/http/dto"
)

// Context keys set by Authenticate
const (
	ctxUserID   = "auth_user_id"
	ctxUserType = "auth_user_type"
	ctxIsStaff  = "auth_is_staff"
)

// Authenticate parses the Authorization header and stores the caller's
// identity in the context. Requests without a valid token pass through
// anonymously; the Require* guards decide what needs a login.
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.Next()
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUserType, claims.UserType)
		c.Set(ctxIsStaff, claims.IsStaff)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// CurrentUserType returns the authenticated caller's account type
func CurrentUserType(c *gin.Context) string {
	return c.GetString(ctxUserType)
}

// IsStaff reports whether the caller is a superuser
func IsStaff(c *gin.Context) bool {
	return c.GetBool(ctxIsStaff)
}

// RequireAuth rejects anonymous requests
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			abortForbidden(c, shared.ErrAuthRequired.Message)
			return
		}
		c.Next()
	}
}

// RequireShop rejects anonymous and non-shop accounts
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			abortForbidden(c, shared.ErrAuthRequired.Message)
			return
		}
		if CurrentUserType(c) != string(identity.UserTypeShop) {
			abortForbidden(c, shared.ErrShopsOnly.Message)
			return
		}
		c.Next()
	}
}

// RequireStaff rejects everyone but superusers
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			abortForbidden(c, shared.ErrAuthRequired.Message)
			return
		}
		if !IsStaff(c) {
			abortForbidden(c, shared.ErrAdminOnly.Message)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.Forbidden(message))
}
