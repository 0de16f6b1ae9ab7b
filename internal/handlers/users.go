package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// UserHandler exposes account administration. All routes require an admin.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=80"`
	Email    string `json:"email" form:"email" validate:"required,email,max=120"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=public staff admin"`
}

type updateUserRequest struct {
	Username *string `json:"username" form:"username" validate:"omitempty,max=80"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email,max=120"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role" validate:"omitempty,oneof=public staff admin"`
}

func (r updateUserRequest) input() services.UpdateUserInput {
	in := services.UpdateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Role != nil {
		role := models.Role(*r.Role)
		in.Role = &role
	}
	return in
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(requestContext(c), services.Filter{"role": c.Query("role")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.service.Create(requestContext(c), services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "User created successfully", user)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.service.Update(requestContext(c), c.Param("id"), req.input())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "User updated successfully", user)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	var actorID string
	if identity := currentIdentity(c); identity != nil {
		actorID = identity.UserID
	}

	deleted, err := h.service.Delete(requestContext(c), actorID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.NewNotFound("User"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "User deleted successfully", gin.H{"deleted": true})
}
