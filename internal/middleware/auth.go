package middleware

import (
	"net/http"

	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/pkg/utils"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the httpOnly cookie carrying the signed session token.
const SessionCookie = "hc_session"

// AuthMiddleware requires a valid session cookie and loads the owning user.
// Handlers downstream read "userId" (and "user") from the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set("user", &user)
		c.Next()
	}
}

// OptionalAuthMiddleware sets "userId" when a valid session cookie is
// present but never aborts; anonymous requests pass through.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// CurrentUser fetches the full user record for the authenticated request.
func CurrentUser(c *gin.Context) *models.User {
	if u, ok := c.Get("user"); ok {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	userID, ok := c.Get("userId")
	if !ok {
		return nil
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil
	}
	return &user
}
