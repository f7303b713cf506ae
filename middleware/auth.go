package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware validates the bearer token and attaches the staff
// identity to the request context. A Redis token-hash cache short-circuits
// revoked tokens; a cache outage falls back to signature validation alone.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		staffID, role, err := utils.ExtractStaffFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		hash := utils.HashToken(tokenString)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if revoked, err := utils.GetAuthCacheClient().Get(ctx, utils.AuthCachePrefix+hash).Result(); err == nil && revoked == "revoked" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token has been revoked"})
			return
		}

		c.Set("staffID", staffID)
		c.Set("role", role)
		c.Next()
	}
}
