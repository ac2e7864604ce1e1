package middleware

import (
	"net/http"
	"strings"

	"freshcart-backend/models"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware authenticates requests carrying "Authorization: Token <key>".
// The key must both carry a valid signature and still exist in auth_tokens;
// logout deletes the row, so revoked keys fail here even before expiry.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Token" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			c.Abort()
			return
		}

		key := parts[1]
		claims, err := utils.ValidateToken(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			c.Abort()
			return
		}

		var token models.AuthToken
		if err := db.Where("key = ?", key).First(&token).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("token_key", key)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			c.Abort()
			return
		}
		c.Next()
	}
}
