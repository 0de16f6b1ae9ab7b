package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

type PartnerHandler struct {
	service *services.PartnerService
}

func NewPartnerHandler(service *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

type partnerRequest struct {
	Name          *string `json:"name" form:"name" validate:"omitempty,max=100"`
	ContactPerson *string `json:"contact_person" form:"contact_person" validate:"omitempty,max=100"`
	Email         *string `json:"email" form:"email" validate:"omitempty,max=120"`
	Phone         *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address" form:"address" validate:"omitempty,max=200"`
	Type          *string `json:"type" form:"type" validate:"omitempty,max=50"`
}

func (r partnerRequest) apply(p *models.Partner) error {
	setString(&p.Name, r.Name)
	setString(&p.ContactPerson, r.ContactPerson)
	setString(&p.Email, r.Email)
	setString(&p.Phone, r.Phone)
	setString(&p.Address, r.Address)
	setString(&p.Type, r.Type)
	return nil
}

// GET /api/partners
func (h *PartnerHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{"type": c.Query("type")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/partners/:id
func (h *PartnerHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/partners
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partnerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Name == nil || req.Type == nil {
		missing := []string{}
		if req.Name == nil {
			missing = append(missing, "name")
		}
		if req.Type == nil {
			missing = append(missing, "type")
		}
		response.Error(c, errors.NewMissingFields(missing))
		return
	}

	partner := &models.Partner{}
	_ = req.apply(partner)
	if err := h.service.Create(requestContext(c), partner); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Partner created successfully", partner)
}

// PUT /api/partners/:id
func (h *PartnerHandler) Update(c *gin.Context) {
	var req partnerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	partner, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Partner updated successfully", partner)
}

// DELETE /api/partners/:id
func (h *PartnerHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Partner"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Partner deleted successfully", gin.H{"deleted": true})
}
