package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/permissions"
)

// /api/auth/me and /api/auth/logout check for a session inside the handler.
func registerAuthRoutes(api *gin.RouterGroup, h *routeHandlers) {
	auth := api.Group("/auth", middleware.RequireAPI(permissions.Anonymous))
	{
		auth.POST("/login", h.auth.Login)
		auth.POST("/logout", h.auth.Logout)
		auth.GET("/me", h.auth.Me)
		auth.POST("/reset-password", h.auth.ResetPassword)
	}
}
