package routes

import (
	"github.com/Las-Vejas/shawty/internal/handlers"
	"github.com/Las-Vejas/shawty/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRedirectRoutes registers the root redirection route
func RegisterRedirectRoutes(r *gin.Engine) {
	r.GET("/:code", middleware.RedirectRateLimit(), handlers.RedirectLink)
}
