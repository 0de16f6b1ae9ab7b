package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/api"
	"github.com/aquaalert/aquaalert/internal/app"
	iauth "github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/database"
	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/services"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB       *gorm.DB
	Store    *docstore.Store
	Sessions *iauth.SessionService
	Router   *gin.Engine
}

// bootstrapRuntime opens storage, prepares authentication and builds the router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = app.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Store, err = app.OpenDocumentStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	stack.Sessions, err = iauth.NewSessionService(stack.DB, jwtSvc, nil)
	if err != nil {
		return nil, fmt.Errorf("initialise session service: %w", err)
	}

	if cfg.Auth.Session.RevokeOnStart {
		revoked, err := stack.Sessions.RevokeAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
		if revoked > 0 {
			log.Info("revoked sessions from previous run", zap.Int64("count", revoked))
		}
	}

	if err := ensureBootstrapAdmin(ctx, cfg, stack, log); err != nil {
		return nil, err
	}

	stack.Router, err = api.NewRouter(stack.DB, stack.Store, cfg, stack.Sessions)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func ensureBootstrapAdmin(ctx context.Context, cfg *app.Config, stack *runtimeStack, log *zap.Logger) error {
	admin := cfg.Auth.BootstrapAdmin
	if admin.Username == "" {
		return nil
	}

	credentials, err := iauth.NewCredentials(stack.DB, cfg.Auth.CredentialsConfig())
	if err != nil {
		return fmt.Errorf("initialise credentials: %w", err)
	}
	users, err := services.NewUserService(stack.DB, credentials, stack.Sessions)
	if err != nil {
		return fmt.Errorf("initialise user service: %w", err)
	}

	created, err := users.EnsureBootstrapAdmin(ctx, admin.Username, admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.Info("bootstrap admin created", zap.String("username", admin.Username))
	}
	return nil
}

// Shutdown releases the database connection.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}

	if s.DB != nil {
		if err := database.Close(s.DB); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
}
