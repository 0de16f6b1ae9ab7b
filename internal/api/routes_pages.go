package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/permissions"
)

func registerPageRoutes(r *gin.Engine, h *routeHandlers) {
	p := h.pages

	r.GET("/", p.Root)
	r.GET("/public_map", p.PublicMap)
	r.GET("/login", p.LoginForm)
	r.POST("/login", p.Login)
	r.GET("/logout", p.Logout)

	staff := r.Group("", middleware.RequirePage(permissions.Staff, p.Forbidden))
	{
		staff.GET("/dashboard", p.Dashboard)
		staff.GET("/management", p.Management)
		staff.GET("/maintenance", p.Maintenance)
		staff.GET("/locations/manage", p.Locations)
		staff.GET("/deployments/manage", p.Deployments)
	}

	admin := r.Group("", middleware.RequirePage(permissions.Admin, p.Forbidden))
	{
		admin.GET("/admin/users", p.Users)
		admin.GET("/admin/users/create", p.CreateUserForm)
		admin.POST("/admin/users/create", p.CreateUser)
		admin.GET("/admin/users/:id/edit", p.EditUserForm)
		admin.POST("/admin/users/:id/edit", p.EditUser)
		admin.POST("/admin/users/:id/delete", p.DeleteUser)

		admin.GET("/finance", p.Finance)
		admin.GET("/finance/invoices", p.Invoices)
		admin.GET("/finance/invoices/create", p.CreateInvoiceForm)
		admin.POST("/finance/invoices/create", p.CreateInvoice)
		admin.GET("/finance/schemes", p.Schemes)
		admin.GET("/finance/schemes/create", p.CreateSchemeForm)
		admin.POST("/finance/schemes/create", p.CreateScheme)
		admin.GET("/finance/schemes/:id/edit", p.EditSchemeForm)
		admin.POST("/finance/schemes/:id/edit", p.EditScheme)

		admin.GET("/emergency/priority", p.Priority)
		admin.GET("/emergency/priority/:id", p.PriorityForm)
		admin.POST("/emergency/priority/:id", p.UpdatePriority)
	}
}
