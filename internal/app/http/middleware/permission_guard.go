package middleware

import (
	"net/http"

	"parking-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// PolicyFrom builds the caller's access policy from the claims AuthMiddleware stored.
func PolicyFrom(c *gin.Context) access.Policy {
	return access.ComputePolicy(c.GetString(CtxRole), c.GetString(CtxUnitID))
}

func RequirePermission(perm access.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxRole); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token", "code": "unauthorized"})
			return
		}

		if !PolicyFrom(c).Can(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied", "code": "forbidden"})
			return
		}

		c.Next()
	}
}
