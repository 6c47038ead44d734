package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

// CurrentRequestUser returns the authenticated user attached by Middleware,
// or nil.
func CurrentRequestUser(c *gin.Context) *internal.User {
	if v, ok := c.Get("user"); ok {
		if u, ok := v.(*internal.User); ok {
			return u
		}
	}
	return nil
}

// Middleware resolves "Authorization: Token <token>" headers against the
// user store and attaches the user to the request context.
func Middleware(users storage.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Token ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Token "))
			user, err := users.GetUserByToken(c.Request.Context(), token)
			if err == nil && user.IsActive {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// AdminOnly gates the admin surface; it must run after Middleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentRequestUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
