package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorize is a middleware factory. The role is taken from the context
// set by the JWT middleware; tenants are already isolated by user_id, so
// policies only decide which resource/action a role may touch.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "missing auth context",
			})
			c.Abort()
			return
		}

		req := EnforceRequest{
			Role:     role.(string),
			Resource: resource,
			Action:   action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
