package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/permissions"
)

func registerOperationsRoutes(api *gin.RouterGroup, h *routeHandlers) {
	staff := middleware.RequireAPI(permissions.Staff)

	alerts := api.Group("/alerts", staff)
	{
		alerts.GET("", h.alerts.List)
		alerts.POST("", h.alerts.Create)
		alerts.POST("/:id/resolve", h.alerts.Resolve)
	}

	partners := api.Group("/partners", staff)
	{
		partners.GET("", h.partners.List)
		partners.POST("", h.partners.Create)
		partners.GET("/:id", h.partners.Get)
		partners.PUT("/:id", h.partners.Update)
		partners.DELETE("/:id", h.partners.Delete)
	}
}
