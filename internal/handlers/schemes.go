package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// SchemeHandler serves mutual-aid schemes and their contributions.
type SchemeHandler struct {
	service *services.SchemeService
}

func NewSchemeHandler(service *services.SchemeService) *SchemeHandler {
	return &SchemeHandler{service: service}
}

type createSchemeRequest struct {
	Name               string   `json:"name" form:"name" validate:"required,max=100"`
	StartDate          string   `json:"start_date" form:"start_date" validate:"required,dateonly"`
	EndDate            string   `json:"end_date" form:"end_date" validate:"dateonly"`
	ContributionAmount *float64 `json:"contribution_amount" form:"contribution_amount" validate:"required,gte=0"`
	Status             string   `json:"status" form:"status"`
	Notes              string   `json:"notes" form:"notes"`
}

type updateSchemeRequest struct {
	Name               *string  `json:"name" form:"name" validate:"omitempty,max=100"`
	StartDate          *string  `json:"start_date" form:"start_date" validate:"omitempty,dateonly"`
	EndDate            *string  `json:"end_date" form:"end_date" validate:"omitempty,dateonly"`
	ContributionAmount *float64 `json:"contribution_amount" form:"contribution_amount" validate:"omitempty,gte=0"`
	Status             *string  `json:"status" form:"status"`
	Notes              *string  `json:"notes" form:"notes"`
}

func (r updateSchemeRequest) apply(s *models.MutualAidScheme) error {
	setString(&s.Name, r.Name)
	setDate(&s.StartDate, r.StartDate)
	setOptionalDate(&s.EndDate, r.EndDate)
	setFloat(&s.ContributionAmount, r.ContributionAmount)
	setString(&s.Status, r.Status)
	setString(&s.Notes, r.Notes)
	return nil
}

type contributionRequest struct {
	ContributorName  string   `json:"contributor_name" form:"contributor_name" validate:"required,max=100"`
	Amount           *float64 `json:"amount" form:"amount" validate:"required,gt=0"`
	ContributionDate string   `json:"contribution_date" form:"contribution_date" validate:"dateonly"`
	ReceiptNumber    string   `json:"receipt_number" form:"receipt_number"`
	Notes            string   `json:"notes" form:"notes"`
}

func (r contributionRequest) model(now time.Time) *models.MutualAidContribution {
	day := now.UTC().Truncate(24 * time.Hour)
	if r.ContributionDate != "" {
		day = date(r.ContributionDate)
	}
	return &models.MutualAidContribution{
		ContributorName:  r.ContributorName,
		Amount:           *r.Amount,
		ContributionDate: day,
		ReceiptNumber:    r.ReceiptNumber,
		Notes:            r.Notes,
	}
}

// GET /api/schemes
func (h *SchemeHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/schemes/:id
func (h *SchemeHandler) Get(c *gin.Context) {
	item, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/schemes
func (h *SchemeHandler) Create(c *gin.Context) {
	var req createSchemeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	scheme := &models.MutualAidScheme{
		Name:               req.Name,
		StartDate:          date(req.StartDate),
		EndDate:            optionalDate(req.EndDate),
		ContributionAmount: *req.ContributionAmount,
		Status:             req.Status,
		Notes:              req.Notes,
	}
	if err := h.service.Create(requestContext(c), scheme); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Scheme created successfully", scheme)
}

// PUT /api/schemes/:id
func (h *SchemeHandler) Update(c *gin.Context) {
	var req updateSchemeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	scheme, err := h.service.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Scheme updated successfully", scheme)
}

// DELETE /api/schemes/:id
func (h *SchemeHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Scheme"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Scheme deleted successfully", gin.H{"deleted": true})
}

// GET /api/schemes/:id/contributions
func (h *SchemeHandler) Contributions(c *gin.Context) {
	items, err := h.service.Contributions(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// POST /api/schemes/:id/contributions
func (h *SchemeHandler) AddContribution(c *gin.Context) {
	var req contributionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	contribution := req.model(time.Now())
	scheme, err := h.service.AddContribution(requestContext(c), c.Param("id"), contribution)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Contribution recorded", gin.H{
		"scheme":       scheme,
		"contribution": contribution,
	})
}
