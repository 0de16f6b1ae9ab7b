package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	iauth "github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/models"
	appErrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// AuthHandler manages login, logout, the current user and password resets.
type AuthHandler struct {
	credentials   *iauth.Credentials
	sessions      *iauth.SessionService
	secureCookies bool
	cookieTTL     time.Duration
}

// NewAuthHandler wires the credential and session services. cookieTTL should
// match the session token lifetime.
func NewAuthHandler(credentials *iauth.Credentials, sessions *iauth.SessionService, secureCookies bool, cookieTTL time.Duration) (*AuthHandler, error) {
	if credentials == nil || sessions == nil {
		return nil, errors.New("auth handler: credentials and sessions are required")
	}
	return &AuthHandler{
		credentials:   credentials,
		sessions:      sessions,
		secureCookies: secureCookies,
		cookieTTL:     cookieTTL,
	}, nil
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"next" form:"next"`
}

type resetPasswordRequest struct {
	Username        string `json:"username" form:"username" validate:"required"`
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, token, err := h.signIn(c, req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":     user,
		"token":    token,
		"redirect": redirectAfterLogin(user, req.Next),
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := currentIdentity(c)
	if !identity.Authenticated() {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	if err := h.signOut(c); err != nil {
		response.Error(c, appErrors.Wrap(err, "Failed to end session"))
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Logged out", gin.H{"revoked": true})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.resetPassword(c, req); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Password updated", nil)
}

func (h *AuthHandler) resetPassword(c *gin.Context, req resetPasswordRequest) error {
	ctx := requestContext(c)
	err := h.credentials.ResetPassword(ctx, req.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return credentialError(err)
	}

	logger.WithModule("auth").Info("password reset", zap.String("username", strings.TrimSpace(req.Username)))
	return nil
}

// signIn checks the credentials, opens a session and sets the session cookie.
func (h *AuthHandler) signIn(c *gin.Context, username, password string) (*models.User, string, error) {
	ctx := requestContext(c)
	user, err := h.credentials.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", credentialError(err)
	}

	token, _, err := h.sessions.Create(ctx, user.ID, iauth.SessionMetadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		return nil, "", appErrors.Wrap(err, "Failed to start session")
	}

	h.setSessionCookie(c, token, int(h.cookieTTL.Seconds()))
	return user, token, nil
}

// signOut revokes the current session, if any, and clears the cookie.
func (h *AuthHandler) signOut(c *gin.Context) error {
	h.setSessionCookie(c, "", -1)
	identity := currentIdentity(c)
	if !identity.Authenticated() {
		return nil
	}
	return h.sessions.Revoke(requestContext(c), identity.SessionID)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
}

// credentialError maps authentication failures onto the client taxonomy.
func credentialError(err error) error {
	var locked *iauth.LockedError
	var violation *iauth.PolicyViolation
	switch {
	case errors.As(err, &locked):
		until := locked.LockedUntil.UTC()
		msg := fmt.Sprintf("Account is locked until %s", until.Format(time.RFC3339))
		if locked.JustLocked {
			msg = "Too many failed login attempts. " + msg
		}
		return appErrors.New(appErrors.CodeAccountLocked, msg, http.StatusForbidden).WithData(gin.H{"locked_until": until.Format(time.RFC3339)})
	case errors.Is(err, iauth.ErrInvalidCredentials):
		return appErrors.ErrInvalidCredentials
	case errors.As(err, &violation):
		return appErrors.NewPolicyViolation(violation.Message)
	default:
		return appErrors.Wrap(err, "Authentication failed")
	}
}

// redirectAfterLogin honours a local next path, otherwise picks the landing
// page for the role.
func redirectAfterLogin(user *models.User, next string) string {
	next = strings.TrimSpace(next)
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	if user != nil && user.IsStaff() {
		return "/dashboard"
	}
	return "/public_map"
}
