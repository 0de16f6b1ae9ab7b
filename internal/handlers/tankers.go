package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// TankerHandler serves the /api/bowsers resource.
type TankerHandler struct {
	service *services.TankerService
}

func NewTankerHandler(service *services.TankerService) *TankerHandler {
	return &TankerHandler{service: service}
}

type createTankerRequest struct {
	Number          string   `json:"number" form:"number" validate:"required,max=20"`
	Capacity        *float64 `json:"capacity" form:"capacity" validate:"required"`
	CurrentLevel    *float64 `json:"current_level" form:"current_level"`
	Status          string   `json:"status" form:"status" validate:"required,oneof=active maintenance deployed inactive"`
	Owner           string   `json:"owner" form:"owner"`
	LastMaintenance string   `json:"last_maintenance" form:"last_maintenance" validate:"dateonly"`
	Notes           string   `json:"notes" form:"notes"`
}

func (r createTankerRequest) model() *models.Tanker {
	t := &models.Tanker{
		Number:          r.Number,
		Capacity:        *r.Capacity,
		Status:          models.TankerStatus(r.Status),
		Owner:           r.Owner,
		LastMaintenance: optionalDate(r.LastMaintenance),
		Notes:           r.Notes,
	}
	if r.CurrentLevel != nil {
		t.CurrentLevel = *r.CurrentLevel
	}
	return t
}

type updateTankerRequest struct {
	Number          *string  `json:"number" form:"number" validate:"omitempty,max=20"`
	Capacity        *float64 `json:"capacity" form:"capacity"`
	CurrentLevel    *float64 `json:"current_level" form:"current_level"`
	Status          *string  `json:"status" form:"status" validate:"omitempty,oneof=active maintenance deployed inactive"`
	Owner           *string  `json:"owner" form:"owner"`
	LastMaintenance *string  `json:"last_maintenance" form:"last_maintenance" validate:"omitempty,dateonly"`
	Notes           *string  `json:"notes" form:"notes"`
}

func (r updateTankerRequest) apply(t *models.Tanker) error {
	setString(&t.Number, r.Number)
	setFloat(&t.Capacity, r.Capacity)
	setFloat(&t.CurrentLevel, r.CurrentLevel)
	if r.Status != nil {
		t.Status = models.TankerStatus(*r.Status)
	}
	setString(&t.Owner, r.Owner)
	setOptionalDate(&t.LastMaintenance, r.LastMaintenance)
	setString(&t.Notes, r.Notes)
	return nil
}

// GET /api/bowsers
func (h *TankerHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{
		"status": c.Query("status"),
		"owner":  c.Query("owner"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Bowsers retrieved successfully", items)
}

// GET /api/bowsers/:id
func (h *TankerHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/bowsers
func (h *TankerHandler) Create(c *gin.Context) {
	var req createTankerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tanker := req.model()
	if err := h.service.Create(requestContext(c), tanker); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Bowser created successfully", tanker)
}

// PUT /api/bowsers/:id
func (h *TankerHandler) Update(c *gin.Context) {
	var req updateTankerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tanker, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Bowser updated successfully", tanker)
}

// DELETE /api/bowsers/:id[?cascade=true]
// Cascading deletes remove deployment and maintenance history and need an admin.
func (h *TankerHandler) Delete(c *gin.Context) {
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))
	if cascade {
		if identity := currentIdentity(c); identity == nil || !identity.Role.IsAdmin() {
			response.Error(c, errors.ErrForbidden)
			return
		}
	}

	deleted, err := h.service.Delete(requestContext(c), c.Param("id"), cascade)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Bowser"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Bowser deleted successfully", gin.H{"deleted": true})
}
