package middleware

import (
	"net/http"
	"strings"

	"jobboard/database/model"
	"jobboard/web/entity"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

const principalKey = "PRINCIPAL"

// Auth resolves the bearer token into a principal when one is present.
// It never rejects: public endpoints run with a nil principal.
// Both "Token <key>" and "Bearer <key>" schemes are accepted.
func Auth() gin.HandlerFunc {
	userService := service.UserService{}
	return func(c *gin.Context) {
		key := tokenFromHeader(c.GetHeader("Authorization"))
		if key == "" {
			c.Next()
			return
		}
		user, err := userService.GetUserByToken(key)
		if err == nil && user.IsActive {
			c.Set(principalKey, user)
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when no principal was resolved.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Principal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.APIError{Error: "Authentication credentials were not provided."})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated user for this request, nil for
// anonymous callers.
func Principal(c *gin.Context) *model.User {
	if obj, ok := c.Get(principalKey); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
