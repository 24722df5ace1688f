package api

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "gatherly/userID"

// RequireAuth verifies the Firebase ID token on the Authorization header
// and stashes the acting uid on the request context. Everything behind it
// can trust UserID without re-checking identity.
func RequireAuth(client *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is malformed"})
			return
		}
		decoded, err := client.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userIDKey, decoded.UID)
		c.Next()
	}
}

// UserID returns the authenticated uid set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
