package middleware

import (
	"net/http"

	"jobboard/database/model"
	"jobboard/web/entity"

	"github.com/gin-gonic/gin"
)

// RoleRequired gates a route group to the given roles. The principal
// must already be resolved by Auth.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.APIError{Error: "Authentication credentials were not provided."})
			return
		}
		if !allowed[principal.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.APIError{Error: "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}
