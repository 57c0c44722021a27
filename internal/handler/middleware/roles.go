package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitchain/gymhub/internal/service"
	jwtpkg "fitchain/gymhub/pkg/jwt"
	"fitchain/gymhub/pkg/response"
)

var errNoClaims = errors.New("claims not found in context")

// RequireAdmin allows admins and super admins through. Role assignments are
// read from the database on every request, so a revoked role takes effect
// immediately rather than at token expiry. Must be used after JWTAuth.
func RequireAdmin(authz service.AuthzService) gin.HandlerFunc {
	return requireRole(authz.RequireAdmin)
}

// RequireSuperAdmin allows only super admins through. Must be used after
// JWTAuth.
func RequireSuperAdmin(authz service.AuthzService) gin.HandlerFunc {
	return requireRole(authz.RequireSuperAdmin)
}

func requireRole(check func(ctx context.Context, userID uuid.UUID) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromClaims(c)
		if err != nil {
			response.Unauthorized(c, "invalid user context")
			c.Abort()
			return
		}

		switch err := check(c.Request.Context(), userID); {
		case err == nil:
			c.Next()
		case errors.Is(err, service.ErrPermissionDenied):
			response.Forbidden(c, "insufficient role")
			c.Abort()
		default:
			response.InternalError(c, "authorization check failed")
			c.Abort()
		}
	}
}

func userIDFromClaims(c *gin.Context) (uuid.UUID, error) {
	claimsVal, exists := c.Get(ContextKeyUserClaims)
	if !exists {
		return uuid.Nil, errNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return uuid.Nil, errNoClaims
	}
	return uuid.Parse(claims.Subject)
}
