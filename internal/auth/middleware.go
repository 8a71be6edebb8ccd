package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

// Middleware authenticates the request from its Bearer token and stores
// the caller identity in the context.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpapi.Fail(c, apperr.New(apperr.KindUnauthorized, apperr.CodeNotAuthenticated))
			return
		}

		claims, err := issuer.ParseAccess(token)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidToken, err))
			return
		}

		httpapi.SetIdentity(c, id, claims.Role, claims.Plan)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpapi.UserRole(c) != string(models.RoleAdmin) {
			httpapi.Fail(c, apperr.New(apperr.KindForbidden, apperr.CodeAdminOnly))
			return
		}
		c.Next()
	}
}
