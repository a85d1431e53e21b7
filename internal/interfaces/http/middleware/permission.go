package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// PolicyChecker answers which roles the policy grants for a resource and action.
type PolicyChecker interface {
	AllowedRoles(resource, action string) (authorization.RoleSet, error)
}

type PermissionMiddleware struct {
	policy PolicyChecker
	logger logger.Interface
}

func NewPermissionMiddleware(policy PolicyChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		policy: policy,
		logger: logger,
	}
}

// RequireAccess passes when the token carries at least one role the policy
// grants for (resource, action). Must run after RequireAuth.
func (m *PermissionMiddleware) RequireAccess(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		allowed, err := m.policy.AllowedRoles(resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		presented := Roles(c)
		if !presented.Intersects(allowed) {
			m.logger.Warnw("permission denied", "roles", presented.Strings(), "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError(authorization.AccessDeniedMessage(allowed, presented)))
			c.Abort()
			return
		}

		c.Next()
	}
}
