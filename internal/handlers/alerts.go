package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/response"
)

type AlertHandler struct {
	service *services.AlertService
}

func NewAlertHandler(service *services.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAlertRequest struct {
	Title     string `json:"title" form:"title" validate:"required,max=100"`
	Message   string `json:"message" form:"message" validate:"required"`
	AlertType string `json:"alert_type" form:"alert_type" validate:"required,max=50"`
	Priority  string `json:"priority" form:"priority" validate:"required,oneof=low medium high critical"`
}

// GET /api/alerts
func (h *AlertHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{
		"status":     c.Query("status"),
		"priority":   c.Query("priority"),
		"alert_type": c.Query("alert_type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// POST /api/alerts
func (h *AlertHandler) Create(c *gin.Context) {
	var req createAlertRequest
	if !bindAndValidate(c, &req) {
		return
	}

	alert := &models.Alert{
		Title:     req.Title,
		Message:   req.Message,
		AlertType: req.AlertType,
		Priority:  req.Priority,
	}
	if err := h.service.Create(requestContext(c), alert); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Alert created successfully", alert)
}

// POST /api/alerts/:id/resolve
func (h *AlertHandler) Resolve(c *gin.Context) {
	alert, err := h.service.Resolve(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Alert resolved", alert)
}
