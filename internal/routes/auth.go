package routes

import (
	"github.com/Las-Vejas/shawty/internal/handlers"
	"github.com/Las-Vejas/shawty/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.GET("/login", handlers.Login)
	r.GET("/callback", handlers.Callback)
	r.GET("/dev", handlers.DevLogin)
	r.POST("/logout", handlers.Logout)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
