package middlewares

import (
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to roles at or above min. Runs after
// AuthMiddleware, which put the role into the context.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("role")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		role, ok := v.(models.Role)
		if !ok || !role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
