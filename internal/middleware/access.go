package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

// AccessChecker answers can(resource, action) for a role.
type AccessChecker interface {
	Can(role models.UserRole, resource, action string) models.AccessDecision
}

// Can aborts with 403 unless the current user may perform action on resource.
// It must run after JWT.
func Can(access AccessChecker, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		decision := access.Can(claims.Role, resource, action)
		if !decision.Can {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, decision.Reason))
			c.Abort()
			return
		}
		c.Next()
	}
}
