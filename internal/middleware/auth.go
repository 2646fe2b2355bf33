package middleware

import (
	"net/http"

	"condo_manager/internal/models"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "session"

// RequireAuth parses the signed session cookie and stores the claims in
// the request context.
func RequireAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := auth.ParseToken(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		if claims.ParentID != nil {
			c.Set("parentID", *claims.ParentID)
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequireWorker gates worker-only routes. Must run after RequireAuth.
func RequireWorker() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(models.RoleWorker) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Worker access required"})
			return
		}
		c.Next()
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// Role reads the authenticated role set by RequireAuth.
func Role(c *gin.Context) string {
	return c.GetString("role")
}
