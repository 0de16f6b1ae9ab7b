package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/app"
	iauth "github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/database/testutil"
	"github.com/aquaalert/aquaalert/internal/docstore"
)

func newTestDeps(t *testing.T) (*docstore.Store, *app.Config, *iauth.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := docstore.New(docstore.NewMemoryBackend())
	require.NoError(t, err)

	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "router-secret-router-secret-32b!", Issuer: "test"})
	require.NoError(t, err)
	sessions, err := iauth.NewSessionService(db, jwtSvc, nil)
	require.NoError(t, err)

	cfg := &app.Config{Storage: app.StorageConfig{InvoiceBackend: "relational"}}
	return store, cfg, sessions
}

func TestNewRouter_RequiresDependencies(t *testing.T) {
	store, cfg, sessions := newTestDeps(t)
	db := testutil.MustOpenTestDB(t)

	_, err := NewRouter(nil, store, cfg, sessions)
	require.Error(t, err)
	_, err = NewRouter(db, nil, cfg, sessions)
	require.Error(t, err)
	_, err = NewRouter(db, store, nil, sessions)
	require.Error(t, err)
	_, err = NewRouter(db, store, cfg, nil)
	require.Error(t, err)
}

func TestNewRouter_RejectsUnknownInvoiceBackend(t *testing.T) {
	store, cfg, sessions := newTestDeps(t)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	cfg.Storage.InvoiceBackend = "spreadsheet"

	_, err := NewRouter(db, store, cfg, sessions)
	require.Error(t, err)
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	store, cfg, sessions := newTestDeps(t)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	router, err := NewRouter(db, store, cfg, sessions)
	require.NoError(t, err)

	registered := map[string]bool{}
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/login",
		"GET /api/bowsers",
		"DELETE /api/bowsers/:id",
		"PUT /api/deployments/:id/priority",
		"POST /api/alerts/:id/resolve",
		"POST /api/schemes/:id/contributions",
		"GET /dashboard",
		"POST /admin/users/:id/delete",
		"POST /emergency/priority/:id",
		"GET /health",
	} {
		require.True(t, registered[want], want)
	}

	// Prometheus stays off unless enabled.
	require.False(t, registered["GET /metrics"])
}
