package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// LocationHandler serves the /api/locations resource.
type LocationHandler struct {
	service *services.LocationService
}

func NewLocationHandler(service *services.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

type createLocationRequest struct {
	Name      string   `json:"name" form:"name" validate:"required,max=100"`
	Address   string   `json:"address" form:"address"`
	Postcode  string   `json:"postcode" form:"postcode"`
	Area      string   `json:"area" form:"area"`
	Latitude  *float64 `json:"latitude" form:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" form:"longitude" validate:"required"`
	Type      string   `json:"type" form:"type" validate:"required"`
	Status    string   `json:"status" form:"status" validate:"required"`
}

type updateLocationRequest struct {
	Name      *string  `json:"name" form:"name" validate:"omitempty,max=100"`
	Address   *string  `json:"address" form:"address"`
	Postcode  *string  `json:"postcode" form:"postcode"`
	Area      *string  `json:"area" form:"area"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Type      *string  `json:"type" form:"type"`
	Status    *string  `json:"status" form:"status"`
}

func (r updateLocationRequest) apply(l *models.Location) error {
	setString(&l.Name, r.Name)
	setString(&l.Address, r.Address)
	setString(&l.Postcode, r.Postcode)
	setString(&l.Area, r.Area)
	setFloat(&l.Latitude, r.Latitude)
	setFloat(&l.Longitude, r.Longitude)
	setString(&l.Type, r.Type)
	setString(&l.Status, r.Status)
	return nil
}

// GET /api/locations
func (h *LocationHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), services.Filter{
		"status":   c.Query("status"),
		"type":     c.Query("type"),
		"area":     c.Query("area"),
		"postcode": c.Query("postcode"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Locations retrieved successfully", items)
}

// GET /api/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req createLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	location := &models.Location{
		Name:      req.Name,
		Address:   req.Address,
		Postcode:  req.Postcode,
		Area:      req.Area,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Type:      req.Type,
		Status:    req.Status,
	}
	if err := h.service.Create(requestContext(c), location); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Location created successfully", location)
}

// PUT /api/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	var req updateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	location, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Location updated successfully", location)
}

// DELETE /api/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Location"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Location deleted successfully", gin.H{"deleted": true})
}
