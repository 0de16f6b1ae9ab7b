package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/app"
	iauth "github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/handlers"
	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/monitoring"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/web"
)

// NewRouter builds the Gin engine, wires middleware and registers the API and
// page routes.
func NewRouter(db *gorm.DB, store *docstore.Store, cfg *app.Config, sessions *iauth.SessionService) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if store == nil {
		return nil, fmt.Errorf("document store must be provided")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	h, err := buildHandlers(db, store, cfg, sessions)
	if err != nil {
		return nil, err
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(tmpl)

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.NoCache())
	r.Use(middleware.Authenticate(sessions))

	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/health", handlers.Health(monitoring.NewHealthManager(
		monitoring.DatabaseCheck(db, 0),
		monitoring.DocumentStoreCheck(store, 0),
	)))
	if cfg.Monitoring.Prometheus.Enabled {
		r.GET(cfg.Monitoring.Prometheus.Endpoint, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	registerAuthRoutes(api, h)
	registerFleetRoutes(api, h)
	registerOperationsRoutes(api, h)
	registerAdminRoutes(api, h)
	registerPageRoutes(r, h)

	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			middleware.NotFoundHandler(c)
			return
		}
		h.pages.NotFound(c)
	})
	r.NoMethod(middleware.MethodNotAllowedHandler)

	return r, nil
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

type routeHandlers struct {
	auth        *handlers.AuthHandler
	tankers     *handlers.TankerHandler
	locations   *handlers.LocationHandler
	deployments *handlers.DeploymentHandler
	maintenance *handlers.MaintenanceHandler
	alerts      *handlers.AlertHandler
	partners    *handlers.PartnerHandler
	users       *handlers.UserHandler
	invoices    *handlers.InvoiceHandler
	schemes     *handlers.SchemeHandler
	pages       *handlers.PageHandler
}

func buildHandlers(db *gorm.DB, store *docstore.Store, cfg *app.Config, sessions *iauth.SessionService) (*routeHandlers, error) {
	credentials, err := iauth.NewCredentials(db, cfg.Auth.CredentialsConfig())
	if err != nil {
		return nil, err
	}

	svc := handlers.PageServices{}
	if svc.Tankers, err = services.NewTankerService(db); err != nil {
		return nil, err
	}
	if svc.Locations, err = services.NewLocationService(db); err != nil {
		return nil, err
	}
	if svc.Deployments, err = services.NewDeploymentService(db); err != nil {
		return nil, err
	}
	if svc.Maintenance, err = services.NewMaintenanceService(db); err != nil {
		return nil, err
	}
	if svc.Alerts, err = services.NewAlertService(db); err != nil {
		return nil, err
	}
	if svc.Users, err = services.NewUserService(db, credentials, sessions); err != nil {
		return nil, err
	}
	if svc.Invoices, err = services.NewInvoiceRepository(cfg.Storage.InvoiceBackend, db, store); err != nil {
		return nil, err
	}
	if svc.Schemes, err = services.NewSchemeService(store); err != nil {
		return nil, err
	}
	partners, err := services.NewPartnerService(db)
	if err != nil {
		return nil, err
	}

	authHandler, err := handlers.NewAuthHandler(credentials, sessions, cfg.Server.SecureCookies, cfg.Auth.Session.TTL)
	if err != nil {
		return nil, err
	}
	pages, err := handlers.NewPageHandler(authHandler, svc)
	if err != nil {
		return nil, err
	}

	return &routeHandlers{
		auth:        authHandler,
		tankers:     handlers.NewTankerHandler(svc.Tankers),
		locations:   handlers.NewLocationHandler(svc.Locations),
		deployments: handlers.NewDeploymentHandler(svc.Deployments),
		maintenance: handlers.NewMaintenanceHandler(svc.Maintenance),
		alerts:      handlers.NewAlertHandler(svc.Alerts),
		partners:    handlers.NewPartnerHandler(partners),
		users:       handlers.NewUserHandler(svc.Users),
		invoices:    handlers.NewInvoiceHandler(svc.Invoices),
		schemes:     handlers.NewSchemeHandler(svc.Schemes),
		pages:       pages,
	}, nil
}
