package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// InvoiceHandler works against whichever invoice backend is configured.
type InvoiceHandler struct {
	repo services.InvoiceRepository
}

func NewInvoiceHandler(repo services.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{repo: repo}
}

type createInvoiceRequest struct {
	InvoiceNumber string   `json:"invoice_number" form:"invoice_number" validate:"required,max=50"`
	ClientName    string   `json:"client_name" form:"client_name" validate:"required,max=100"`
	IssueDate     string   `json:"issue_date" form:"issue_date" validate:"required,dateonly"`
	DueDate       string   `json:"due_date" form:"due_date" validate:"required,dateonly"`
	Amount        *float64 `json:"amount" form:"amount" validate:"required,gte=0"`
	Status        string   `json:"status" form:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	DeploymentID  string   `json:"deployment_id" form:"deployment_id"`
	Notes         string   `json:"notes" form:"notes"`
}

func (r createInvoiceRequest) model() *models.Invoice {
	inv := &models.Invoice{
		InvoiceNumber: r.InvoiceNumber,
		ClientName:    r.ClientName,
		IssueDate:     date(r.IssueDate),
		DueDate:       date(r.DueDate),
		Amount:        *r.Amount,
		Status:        r.Status,
		Notes:         r.Notes,
	}
	if r.DeploymentID != "" {
		id := r.DeploymentID
		inv.DeploymentID = &id
	}
	return inv
}

type updateInvoiceRequest struct {
	InvoiceNumber *string  `json:"invoice_number" form:"invoice_number" validate:"omitempty,max=50"`
	ClientName    *string  `json:"client_name" form:"client_name" validate:"omitempty,max=100"`
	IssueDate     *string  `json:"issue_date" form:"issue_date" validate:"omitempty,dateonly"`
	DueDate       *string  `json:"due_date" form:"due_date" validate:"omitempty,dateonly"`
	Amount        *float64 `json:"amount" form:"amount" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" form:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	DeploymentID  *string  `json:"deployment_id" form:"deployment_id"`
	Notes         *string  `json:"notes" form:"notes"`
}

func (r updateInvoiceRequest) apply(inv *models.Invoice) error {
	setString(&inv.InvoiceNumber, r.InvoiceNumber)
	setString(&inv.ClientName, r.ClientName)
	setDate(&inv.IssueDate, r.IssueDate)
	setDate(&inv.DueDate, r.DueDate)
	setFloat(&inv.Amount, r.Amount)
	setString(&inv.Status, r.Status)
	if r.DeploymentID != nil {
		id := *r.DeploymentID
		inv.DeploymentID = &id
	}
	setString(&inv.Notes, r.Notes)
	return nil
}

// GET /api/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	items, err := h.repo.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	item, err := h.repo.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invoice := req.model()
	if err := h.repo.Create(requestContext(c), invoice); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Invoice created successfully", invoice)
}

// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req updateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invoice, err := h.repo.Update(requestContext(c), c.Param("id"), req.apply)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Invoice updated successfully", invoice)
}

// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	deleted, err := h.repo.Delete(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("Invoice"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Invoice deleted successfully", gin.H{"deleted": true})
}
