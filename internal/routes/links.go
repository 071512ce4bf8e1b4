package routes

import (
	"github.com/Las-Vejas/shawty/internal/handlers"
	"github.com/Las-Vejas/shawty/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterLinkRoutes(r gin.IRouter) {
	links := r.Group("/links")
	links.Use(middleware.AuthMiddleware())
	{
		links.GET("", handlers.ListLinks)
		links.POST("", handlers.CreateLink)
		links.PUT("/:id", handlers.UpdateLink)
		links.POST("/:id/leaderboard", handlers.ToggleLeaderboard)
		links.DELETE("/:id", handlers.DeleteLink)
		links.GET("/:id/analytics", handlers.GetLinkAnalytics)
	}

	// Public: opted-in links ranked by clicks. Auth is optional so request
	// logs still carry user_id for logged-in visitors.
	r.GET("/leaderboard", middleware.OptionalAuthMiddleware(), handlers.GetLeaderboard)
}
