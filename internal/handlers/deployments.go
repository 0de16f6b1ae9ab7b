package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// DeploymentHandler serves the /api/deployments resource.
type DeploymentHandler struct {
	service *services.DeploymentService
}

func NewDeploymentHandler(service *services.DeploymentService) *DeploymentHandler {
	return &DeploymentHandler{service: service}
}

type createDeploymentRequest struct {
	BowserID           string   `json:"bowser_id" form:"bowser_id" validate:"required"`
	LocationID         string   `json:"location_id" form:"location_id" validate:"required"`
	StartDate          string   `json:"start_date" form:"start_date" validate:"required,dateonly"`
	EndDate            string   `json:"end_date" form:"end_date" validate:"dateonly"`
	Status             string   `json:"status" form:"status" validate:"required,oneof=scheduled active completed cancelled"`
	Priority           string   `json:"priority" form:"priority" validate:"omitempty,oneof=low medium high critical"`
	EmergencyReason    string   `json:"emergency_reason" form:"emergency_reason"`
	PopulationAffected *int     `json:"population_affected" form:"population_affected" validate:"omitempty,gte=0"`
	ExpectedDuration   *int     `json:"expected_duration" form:"expected_duration" validate:"omitempty,gte=0"`
	AlternativeSources bool     `json:"alternative_sources" form:"alternative_sources"`
	VulnerabilityIndex *float64 `json:"vulnerability_index" form:"vulnerability_index" validate:"omitempty,gte=0"`
	Notes              string   `json:"notes" form:"notes"`
}

func (r createDeploymentRequest) model() *models.Deployment {
	d := &models.Deployment{
		BowserID:           r.BowserID,
		LocationID:         r.LocationID,
		StartDate:          date(r.StartDate),
		EndDate:            optionalDate(r.EndDate),
		Status:             models.DeploymentStatus(r.Status),
		Priority:           models.Priority(r.Priority),
		EmergencyReason:    r.EmergencyReason,
		AlternativeSources: r.AlternativeSources,
		Notes:              r.Notes,
	}
	setInt(&d.PopulationAffected, r.PopulationAffected)
	setInt(&d.ExpectedDuration, r.ExpectedDuration)
	setFloat(&d.VulnerabilityIndex, r.VulnerabilityIndex)
	return d
}

type updateDeploymentRequest struct {
	BowserID           *string  `json:"bowser_id" form:"bowser_id"`
	LocationID         *string  `json:"location_id" form:"location_id"`
	StartDate          *string  `json:"start_date" form:"start_date" validate:"omitempty,dateonly"`
	EndDate            *string  `json:"end_date" form:"end_date" validate:"omitempty,dateonly"`
	Status             *string  `json:"status" form:"status" validate:"omitempty,oneof=scheduled active completed cancelled"`
	Priority           *string  `json:"priority" form:"priority" validate:"omitempty,oneof=low medium high critical"`
	EmergencyReason    *string  `json:"emergency_reason" form:"emergency_reason"`
	PopulationAffected *int     `json:"population_affected" form:"population_affected" validate:"omitempty,gte=0"`
	ExpectedDuration   *int     `json:"expected_duration" form:"expected_duration" validate:"omitempty,gte=0"`
	AlternativeSources *bool    `json:"alternative_sources" form:"alternative_sources"`
	VulnerabilityIndex *float64 `json:"vulnerability_index" form:"vulnerability_index" validate:"omitempty,gte=0"`
	Notes              *string  `json:"notes" form:"notes"`
}

func (r updateDeploymentRequest) apply(d *models.Deployment) error {
	setString(&d.BowserID, r.BowserID)
	setString(&d.LocationID, r.LocationID)
	setDate(&d.StartDate, r.StartDate)
	setOptionalDate(&d.EndDate, r.EndDate)
	if r.Status != nil {
		d.Status = models.DeploymentStatus(*r.Status)
	}
	if r.Priority != nil {
		d.Priority = models.Priority(*r.Priority)
	}
	setString(&d.EmergencyReason, r.EmergencyReason)
	setInt(&d.PopulationAffected, r.PopulationAffected)
	setInt(&d.ExpectedDuration, r.ExpectedDuration)
	if r.AlternativeSources != nil {
		d.AlternativeSources = *r.AlternativeSources
	}
	setFloat(&d.VulnerabilityIndex, r.VulnerabilityIndex)
	setString(&d.Notes, r.Notes)
	return nil
}

type priorityRequest struct {
	Priority           string   `json:"priority" form:"priority" validate:"required,oneof=low medium high critical"`
	EmergencyReason    *string  `json:"emergency_reason" form:"emergency_reason"`
	PopulationAffected *int     `json:"population_affected" form:"population_affected" validate:"omitempty,gte=0"`
	VulnerabilityIndex *float64 `json:"vulnerability_index" form:"vulnerability_index" validate:"omitempty,gte=0"`
}

func (r priorityRequest) update() services.PriorityUpdate {
	return services.PriorityUpdate{
		Priority:           models.Priority(r.Priority),
		EmergencyReason:    r.EmergencyReason,
		PopulationAffected: r.PopulationAffected,
		VulnerabilityIndex: r.VulnerabilityIndex,
	}
}

// GET /api/deployments
func (h *DeploymentHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{
		"status":      c.Query("status"),
		"priority":    c.Query("priority"),
		"bowser_id":   c.Query("bowser_id"),
		"location_id": c.Query("location_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Deployments retrieved successfully", items)
}

// GET /api/deployments/:id
func (h *DeploymentHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/deployments
func (h *DeploymentHandler) Create(c *gin.Context) {
	var req createDeploymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	deployment := req.model()
	if err := h.service.Create(requestContext(c), deployment); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Deployment created successfully", deployment)
}

// PUT /api/deployments/:id
func (h *DeploymentHandler) Update(c *gin.Context) {
	var req updateDeploymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	deployment, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Deployment updated successfully", deployment)
}

// PUT /api/deployments/:id/priority
func (h *DeploymentHandler) UpdatePriority(c *gin.Context) {
	var req priorityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	deployment, err := h.service.UpdatePriority(requestContext(c), c.Param("id"), req.update())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Priority updated successfully", deployment)
}

// GET /api/deployments/priority
func (h *DeploymentHandler) ActiveByPriority(c *gin.Context) {
	items, err := h.service.ActiveByPriority(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// DELETE /api/deployments/:id
func (h *DeploymentHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Deployment"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Deployment deleted successfully", gin.H{"deleted": true})
}
