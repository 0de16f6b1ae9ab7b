package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/permissions"
)

func registerFleetRoutes(api *gin.RouterGroup, h *routeHandlers) {
	staff := middleware.RequireAPI(permissions.Staff)

	bowsers := api.Group("/bowsers", staff)
	{
		bowsers.GET("", h.tankers.List)
		bowsers.POST("", h.tankers.Create)
		bowsers.GET("/:id", h.tankers.Get)
		bowsers.PUT("/:id", h.tankers.Update)
		bowsers.DELETE("/:id", h.tankers.Delete)
	}

	locations := api.Group("/locations", staff)
	{
		locations.GET("", h.locations.List)
		locations.POST("", h.locations.Create)
		locations.GET("/:id", h.locations.Get)
		locations.PUT("/:id", h.locations.Update)
		locations.DELETE("/:id", h.locations.Delete)
	}

	deployments := api.Group("/deployments", staff)
	{
		deployments.GET("", h.deployments.List)
		deployments.POST("", h.deployments.Create)
		deployments.GET("/priority", h.deployments.ActiveByPriority)
		deployments.GET("/:id", h.deployments.Get)
		deployments.PUT("/:id", h.deployments.Update)
		deployments.DELETE("/:id", h.deployments.Delete)
		deployments.PUT("/:id/priority", middleware.RequireAPI(permissions.Admin), h.deployments.UpdatePriority)
	}

	maintenance := api.Group("/maintenance", staff)
	{
		maintenance.GET("", h.maintenance.List)
		maintenance.POST("", h.maintenance.Create)
		maintenance.GET("/:id", h.maintenance.Get)
		maintenance.PUT("/:id", h.maintenance.Update)
		maintenance.DELETE("/:id", h.maintenance.Delete)
	}
}
