package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/permissions"
)

func registerAdminRoutes(api *gin.RouterGroup, h *routeHandlers) {
	admin := middleware.RequireAPI(permissions.Admin)

	users := api.Group("/users", admin)
	{
		users.GET("", h.users.List)
		users.POST("", h.users.Create)
		users.GET("/:id", h.users.Get)
		users.PUT("/:id", h.users.Update)
		users.DELETE("/:id", h.users.Delete)
	}

	invoices := api.Group("/invoices", admin)
	{
		invoices.GET("", h.invoices.List)
		invoices.POST("", h.invoices.Create)
		invoices.GET("/:id", h.invoices.Get)
		invoices.PUT("/:id", h.invoices.Update)
		invoices.DELETE("/:id", h.invoices.Delete)
	}

	schemes := api.Group("/schemes", admin)
	{
		schemes.GET("", h.schemes.List)
		schemes.POST("", h.schemes.Create)
		schemes.GET("/:id", h.schemes.Get)
		schemes.PUT("/:id", h.schemes.Update)
		schemes.DELETE("/:id", h.schemes.Delete)
		schemes.GET("/:id/contributions", h.schemes.Contributions)
		schemes.POST("/:id/contributions", h.schemes.AddContribution)
	}
}
