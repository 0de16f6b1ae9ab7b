package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

type MaintenanceHandler struct {
	service *services.MaintenanceService
}

func NewMaintenanceHandler(service *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

type createMaintenanceRequest struct {
	BowserID        string `json:"bowser_id" form:"bowser_id" validate:"required"`
	MaintenanceType string `json:"maintenance_type" form:"maintenance_type" validate:"required,max=50"`
	Description     string `json:"description" form:"description" validate:"required"`
	Date            string `json:"date" form:"date" validate:"required,dateonly"`
	Status          string `json:"status" form:"status" validate:"required,max=20"`
}

type updateMaintenanceRequest struct {
	BowserID        *string `json:"bowser_id" form:"bowser_id"`
	MaintenanceType *string `json:"maintenance_type" form:"maintenance_type" validate:"omitempty,max=50"`
	Description     *string `json:"description" form:"description"`
	Date            *string `json:"date" form:"date" validate:"omitempty,dateonly"`
	Status          *string `json:"status" form:"status" validate:"omitempty,max=20"`
}

func (r updateMaintenanceRequest) apply(m *models.Maintenance) error {
	setString(&m.BowserID, r.BowserID)
	setString(&m.MaintenanceType, r.MaintenanceType)
	setString(&m.Description, r.Description)
	setDate(&m.Date, r.Date)
	setString(&m.Status, r.Status)
	return nil
}

// GET /api/maintenance
func (h *MaintenanceHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{
		"status":           c.Query("status"),
		"bowser_id":        c.Query("bowser_id"),
		"maintenance_type": c.Query("maintenance_type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Maintenance records retrieved successfully", items)
}

// GET /api/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req createMaintenanceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record := &models.Maintenance{
		BowserID:        req.BowserID,
		MaintenanceType: req.MaintenanceType,
		Description:     req.Description,
		Date:            date(req.Date),
		Status:          req.Status,
	}
	if err := h.service.Create(requestContext(c), record); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Maintenance record created successfully", record)
}

// PUT /api/maintenance/:id
func (h *MaintenanceHandler) Update(c *gin.Context) {
	var req updateMaintenanceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Maintenance record updated successfully", record)
}

// DELETE /api/maintenance/:id
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Maintenance record"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Maintenance record deleted successfully", gin.H{"deleted": true})
}
