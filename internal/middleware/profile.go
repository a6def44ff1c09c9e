package middleware

import (
	"net/http" // HTTP status codes

	"estate_crm/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ContextUserKey is the gin context key holding the resolved CRM profile
const ContextUserKey = "currentUser"

// ProfileMiddleware resolves the authenticated user's CRM profile from the
// database on each request, so handlers always see the current role
func ProfileMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Set by JWTAuthMiddleware
		if !exists {
			// No authenticated identity, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Load the profile with its linked account
		if err := db.Preload("Account").First(&user, userID).Error; err != nil {
			// Token refers to a profile that no longer exists
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.Set(ContextUserKey, user) // Store the profile in context
		c.Next()                    // Proceed to the next handler
	}
}

// CurrentUser returns the profile stored by ProfileMiddleware
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
