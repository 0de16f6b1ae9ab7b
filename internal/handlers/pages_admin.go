package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	appErrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/web"
)

var priorities = []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical}

type userForm struct {
	Username string
	Email    string
	Role     string
}

type schemeForm struct {
	Name               string
	StartDate          string
	EndDate            string
	ContributionAmount float64
	Status             string
	Notes              string
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func status(err error) int {
	return appErrors.FromError(err).StatusCode
}

func message(err error) string {
	return appErrors.FromError(err).Message
}

// GET /admin/users
func (h *PageHandler) Users(c *gin.Context) {
	users, err := h.svc.Users.List(requestContext(c), nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "users.html", "User management", gin.H{"Users": users})
}

func (h *PageHandler) userForm(c *gin.Context, code int, title, action string, editing bool, form userForm, err error) {
	data := gin.H{
		"Action":  action,
		"Editing": editing,
		"Form":    form,
		"Roles":   models.Roles,
	}
	if err != nil {
		data["Error"] = message(err)
	}
	h.render(c, code, "user_form.html", title, data)
}

// GET /admin/users/create
func (h *PageHandler) CreateUserForm(c *gin.Context) {
	h.userForm(c, http.StatusOK, "Create user", "/admin/users/create", false, userForm{Role: string(models.RoleStaff)}, nil)
}

// POST /admin/users/create
func (h *PageHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	err := bindRequest(c, &req)
	if err == nil {
		_, err = h.svc.Users.Create(requestContext(c), services.CreateUserInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     models.Role(req.Role),
		})
	}
	if err != nil {
		form := userForm{Username: req.Username, Email: req.Email, Role: req.Role}
		h.userForm(c, status(err), "Create user", "/admin/users/create", false, form, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// GET /admin/users/:id/edit
func (h *PageHandler) EditUserForm(c *gin.Context) {
	user, err := h.svc.Users.Get(requestContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	form := userForm{Username: user.Username, Email: user.Email, Role: string(user.Role)}
	h.userForm(c, http.StatusOK, "Edit user", "/admin/users/"+user.ID+"/edit", true, form, nil)
}

// POST /admin/users/:id/edit
func (h *PageHandler) EditUser(c *gin.Context) {
	id := c.Param("id")
	var req updateUserRequest
	err := bindRequest(c, &req)
	if err == nil {
		_, err = h.svc.Users.Update(requestContext(c), id, req.input())
	}
	if err != nil {
		form := userForm{Username: deref(req.Username), Email: deref(req.Email), Role: deref(req.Role)}
		h.userForm(c, status(err), "Edit user", "/admin/users/"+id+"/edit", true, form, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// POST /admin/users/:id/delete
func (h *PageHandler) DeleteUser(c *gin.Context) {
	var actorID string
	if identity := currentIdentity(c); identity != nil {
		actorID = identity.UserID
	}

	deleted, err := h.svc.Users.Delete(requestContext(c), actorID, c.Param("id"))
	if err == nil && !deleted {
		err = appErrors.NewNotFound("User")
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// GET /finance
func (h *PageHandler) Finance(c *gin.Context) {
	ctx := requestContext(c)
	invoices, err := h.svc.Invoices.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	schemes, err := h.svc.Schemes.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	var invoiced, outstanding, balance float64
	for _, inv := range invoices {
		invoiced += inv.Amount
		if inv.Status != "paid" && inv.Status != "cancelled" {
			outstanding += inv.Amount
		}
	}
	for _, s := range schemes {
		balance += s.Balance
	}

	h.render(c, http.StatusOK, "finance.html", "Finance", gin.H{
		"Invoices":      invoices,
		"Schemes":       schemes,
		"Invoiced":      invoiced,
		"Outstanding":   outstanding,
		"SchemeBalance": balance,
	})
}

// GET /finance/invoices
func (h *PageHandler) Invoices(c *gin.Context) {
	invoices, err := h.svc.Invoices.List(requestContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "invoices.html", "Invoices", gin.H{"Invoices": invoices})
}

func (h *PageHandler) invoiceForm(c *gin.Context, code int, form *createInvoiceRequest, err error) {
	deployments, listErr := h.svc.Deployments.List(requestContext(c), nil)
	if listErr != nil {
		h.fail(c, listErr)
		return
	}
	data := gin.H{"Form": form, "Deployments": deployments}
	if err != nil {
		data["Error"] = message(err)
	}
	h.render(c, code, "invoice_form.html", "Create invoice", data)
}

// GET /finance/invoices/create
func (h *PageHandler) CreateInvoiceForm(c *gin.Context) {
	h.invoiceForm(c, http.StatusOK, nil, nil)
}

// POST /finance/invoices/create
func (h *PageHandler) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	err := bindRequest(c, &req)
	if err == nil {
		err = h.svc.Invoices.Create(requestContext(c), req.model())
	}
	if err != nil {
		h.invoiceForm(c, status(err), &req, err)
		return
	}
	c.Redirect(http.StatusFound, "/finance/invoices")
}

// GET /finance/schemes
func (h *PageHandler) Schemes(c *gin.Context) {
	schemes, err := h.svc.Schemes.List(requestContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "schemes.html", "Mutual aid schemes", gin.H{"Schemes": schemes})
}

func (h *PageHandler) schemeForm(c *gin.Context, code int, title, action string, form schemeForm, err error) {
	data := gin.H{"Action": action, "Form": form}
	if err != nil {
		data["Error"] = message(err)
	}
	h.render(c, code, "scheme_form.html", title, data)
}

// GET /finance/schemes/create
func (h *PageHandler) CreateSchemeForm(c *gin.Context) {
	h.schemeForm(c, http.StatusOK, "Create scheme", "/finance/schemes/create", schemeForm{Status: "active"}, nil)
}

// POST /finance/schemes/create
func (h *PageHandler) CreateScheme(c *gin.Context) {
	var req createSchemeRequest
	err := bindRequest(c, &req)
	if err == nil {
		err = h.svc.Schemes.Create(requestContext(c), &models.MutualAidScheme{
			Name:               req.Name,
			StartDate:          date(req.StartDate),
			EndDate:            optionalDate(req.EndDate),
			ContributionAmount: *req.ContributionAmount,
			Status:             req.Status,
			Notes:              req.Notes,
		})
	}
	if err != nil {
		form := schemeForm{
			Name:               req.Name,
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			ContributionAmount: deref(req.ContributionAmount),
			Status:             req.Status,
			Notes:              req.Notes,
		}
		h.schemeForm(c, status(err), "Create scheme", "/finance/schemes/create", form, err)
		return
	}
	c.Redirect(http.StatusFound, "/finance/schemes")
}

// GET /finance/schemes/:id/edit
func (h *PageHandler) EditSchemeForm(c *gin.Context) {
	scheme, err := h.svc.Schemes.Get(requestContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	form := schemeForm{
		Name:               scheme.Name,
		StartDate:          scheme.StartDate.Format(web.DateLayout),
		ContributionAmount: scheme.ContributionAmount,
		Status:             scheme.Status,
		Notes:              scheme.Notes,
	}
	if scheme.EndDate != nil {
		form.EndDate = scheme.EndDate.Format(web.DateLayout)
	}
	h.schemeForm(c, http.StatusOK, "Edit scheme", "/finance/schemes/"+scheme.ID+"/edit", form, nil)
}

// POST /finance/schemes/:id/edit
func (h *PageHandler) EditScheme(c *gin.Context) {
	id := c.Param("id")
	var req updateSchemeRequest
	err := bindRequest(c, &req)
	if err == nil {
		_, err = h.svc.Schemes.Update(requestContext(c), id, req.apply)
	}
	if err != nil {
		form := schemeForm{
			Name:               deref(req.Name),
			StartDate:          deref(req.StartDate),
			EndDate:            deref(req.EndDate),
			ContributionAmount: deref(req.ContributionAmount),
			Status:             deref(req.Status),
			Notes:              deref(req.Notes),
		}
		h.schemeForm(c, status(err), "Edit scheme", "/finance/schemes/"+id+"/edit", form, err)
		return
	}
	c.Redirect(http.StatusFound, "/finance/schemes")
}

// GET /emergency/priority
func (h *PageHandler) Priority(c *gin.Context) {
	deployments, err := h.svc.Deployments.ActiveByPriority(requestContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "priority.html", "Emergency priority", gin.H{"Deployments": deployments})
}

func (h *PageHandler) priorityForm(c *gin.Context, code int, id string, err error) {
	deployment, getErr := h.svc.Deployments.Get(requestContext(c), id)
	if getErr != nil {
		h.fail(c, getErr)
		return
	}
	data := gin.H{"Deployment": deployment, "Priorities": priorities}
	if err != nil {
		data["Error"] = message(err)
	}
	h.render(c, code, "priority_form.html", "Update priority", data)
}

// GET /emergency/priority/:id
func (h *PageHandler) PriorityForm(c *gin.Context) {
	h.priorityForm(c, http.StatusOK, c.Param("id"), nil)
}

// POST /emergency/priority/:id
func (h *PageHandler) UpdatePriority(c *gin.Context) {
	id := c.Param("id")
	var req priorityRequest
	err := bindRequest(c, &req)
	if err == nil {
		_, err = h.svc.Deployments.UpdatePriority(requestContext(c), id, req.update())
	}
	if err != nil {
		h.priorityForm(c, status(err), id, err)
		return
	}
	c.Redirect(http.StatusFound, "/emergency/priority")
}
