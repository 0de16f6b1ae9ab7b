package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
	appErrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// PageServices are the services the HTML pages read from and write to.
type PageServices struct {
	Tankers     *services.TankerService
	Locations   *services.LocationService
	Deployments *services.DeploymentService
	Maintenance *services.MaintenanceService
	Alerts      *services.AlertService
	Users       *services.UserService
	Invoices    services.InvoiceRepository
	Schemes     *services.SchemeService
}

// PageHandler renders the server-side UI. Read-only pages load their data
// here; list pages post their forms to the JSON API, while the admin, finance
// and priority forms are classic POST-redirect-GET.
type PageHandler struct {
	auth *AuthHandler
	svc  PageServices
	log  *zap.Logger
}

func NewPageHandler(auth *AuthHandler, svc PageServices) (*PageHandler, error) {
	if auth == nil {
		return nil, errors.New("page handler: auth handler is required")
	}
	if svc.Tankers == nil || svc.Locations == nil || svc.Deployments == nil || svc.Maintenance == nil ||
		svc.Alerts == nil || svc.Users == nil || svc.Invoices == nil || svc.Schemes == nil {
		return nil, errors.New("page handler: all services are required")
	}
	return &PageHandler{auth: auth, svc: svc, log: logger.WithModule("pages")}, nil
}

type mapPoint struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Bowser string  `json:"bowser,omitempty"`
}

// render fills in the layout fields every template expects.
func (h *PageHandler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	identity := currentIdentity(c)
	signedIn := identity.Authenticated()
	data["Title"] = title
	data["SignedIn"] = signedIn
	data["IsStaff"] = signedIn && identity.Role.IsStaff()
	data["IsAdmin"] = signedIn && identity.Role.IsAdmin()
	if signedIn {
		data["CurrentUser"] = identity.Username
		data["UserID"] = identity.UserID
	}
	c.HTML(status, name, data)
}

// fail renders the error page for err using the client-facing status and message.
func (h *PageHandler) fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.log.Error("page failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	h.render(c, appErr.StatusCode, "error.html", "Something went wrong", gin.H{"Message": appErr.Message})
}

// Forbidden is the renderer RequirePage uses for signed in users without the role.
func (h *PageHandler) Forbidden(c *gin.Context, message string) {
	h.render(c, http.StatusForbidden, "forbidden.html", "Access denied", gin.H{"Message": message})
}

// NotFound renders the 404 page for unknown non-API paths.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", "Page not found", gin.H{"Message": "The page you requested does not exist."})
}

// GET /
func (h *PageHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/public_map")
}

// GET /login
func (h *PageHandler) LoginForm(c *gin.Context) {
	if identity := currentIdentity(c); identity.Authenticated() {
		c.Redirect(http.StatusFound, redirectAfterLogin(userFromIdentity(c), c.Query("next")))
		return
	}
	h.render(c, http.StatusOK, "login.html", "Log in", gin.H{"Next": c.Query("next")})
}

// POST /login
func (h *PageHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindRequest(c, &req); err != nil {
		h.loginFailed(c, req, err)
		return
	}

	user, _, err := h.auth.signIn(c, req.Username, req.Password)
	if err != nil {
		h.loginFailed(c, req, err)
		return
	}
	c.Redirect(http.StatusFound, redirectAfterLogin(user, req.Next))
}

func (h *PageHandler) loginFailed(c *gin.Context, req loginRequest, err error) {
	appErr := appErrors.FromError(err)
	h.render(c, appErr.StatusCode, "login.html", "Log in", gin.H{
		"Next":     req.Next,
		"Username": req.Username,
		"Error":    appErr.Message,
	})
}

// GET /logout
func (h *PageHandler) Logout(c *gin.Context) {
	if err := h.auth.signOut(c); err != nil {
		h.log.Warn("logout failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/login")
}

// GET /public_map
func (h *PageHandler) PublicMap(c *gin.Context) {
	deployments, err := h.svc.Deployments.List(requestContext(c), services.Filter{"status": string(models.DeploymentActive)})
	if err != nil {
		h.fail(c, err)
		return
	}

	points := make([]mapPoint, 0, len(deployments))
	for _, d := range deployments {
		if d.Location == nil {
			continue
		}
		p := mapPoint{Name: d.Location.Name, Lat: d.Location.Latitude, Lon: d.Location.Longitude}
		if d.Bowser != nil {
			p.Bowser = d.Bowser.Number
		}
		points = append(points, p)
	}

	h.render(c, http.StatusOK, "public_map.html", "Water bowser locations", gin.H{
		"Map":         true,
		"Deployments": deployments,
		"Points":      points,
	})
}

// GET /dashboard
func (h *PageHandler) Dashboard(c *gin.Context) {
	ctx := requestContext(c)
	tankers, err := h.svc.Tankers.List(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	current, err := h.svc.Deployments.CurrentLocations(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	active, err := h.svc.Deployments.ActiveByPriority(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	alerts, err := h.svc.Alerts.List(ctx, services.Filter{"status": models.AlertOpen})
	if err != nil {
		h.fail(c, err)
		return
	}

	counts := map[string]int{}
	for _, t := range tankers {
		counts[string(t.Status)]++
	}

	h.render(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"Tankers":      tankers,
		"Current":      current,
		"Active":       active,
		"Alerts":       alerts,
		"StatusCounts": counts,
	})
}

// GET /management
func (h *PageHandler) Management(c *gin.Context) {
	tankers, err := h.svc.Tankers.List(requestContext(c), services.Filter{"status": c.Query("status")})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "management.html", "Bowser management", gin.H{"Tankers": tankers})
}

// GET /maintenance
func (h *PageHandler) Maintenance(c *gin.Context) {
	ctx := requestContext(c)
	records, err := h.svc.Maintenance.List(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	tankers, err := h.svc.Tankers.List(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "maintenance.html", "Maintenance", gin.H{
		"Records": records,
		"Tankers": tankers,
	})
}

// GET /locations/manage
func (h *PageHandler) Locations(c *gin.Context) {
	locations, err := h.svc.Locations.List(requestContext(c), nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "locations.html", "Locations", gin.H{"Locations": locations})
}

// GET /deployments/manage
func (h *PageHandler) Deployments(c *gin.Context) {
	ctx := requestContext(c)
	deployments, err := h.svc.Deployments.List(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	tankers, err := h.svc.Tankers.List(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	locations, err := h.svc.Locations.List(ctx, services.Filter{"status": "active"})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "deployments.html", "Deployments", gin.H{
		"Deployments": deployments,
		"Tankers":     tankers,
		"Locations":   locations,
	})
}

func userFromIdentity(c *gin.Context) *models.User {
	if user := middleware.UserFrom(c); user != nil {
		return user
	}
	if identity := currentIdentity(c); identity != nil {
		return &models.User{Role: identity.Role}
	}
	return nil
}
