package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/api"
	"github.com/aquaalert/aquaalert/internal/app"
	iauth "github.com/aquaalert/aquaalert/internal/auth"
	sharedtestutil "github.com/aquaalert/aquaalert/internal/database/testutil"
	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/middleware"
	"github.com/aquaalert/aquaalert/internal/models"
)

// DefaultPassword satisfies the default password policy.
const DefaultPassword = "Passw0rd!"

// Env encapsulates a fully-wired router backed by an in-memory database and
// document store for handler tests.
type Env struct {
	T           *testing.T
	DB          *gorm.DB
	Store       *docstore.Store
	Config      *app.Config
	Credentials *iauth.Credentials
	Sessions    *iauth.SessionService
	Router      *gin.Engine
}

// Option adjusts the configuration before the router is built.
type Option func(*app.Config)

// WithInvoiceBackend selects the invoice repository implementation.
func WithInvoiceBackend(backend string) Option {
	return func(cfg *app.Config) {
		cfg.Storage.InvoiceBackend = backend
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T, opts ...Option) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	store, err := docstore.New(docstore.NewMemoryBackend())
	require.NoError(t, err)

	cfg := &app.Config{
		Auth: app.AuthConfig{
			Session: app.SessionSettings{
				Secret: "test-suite-super-secret-key-32-bytes!!",
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
			Lockout: app.LockoutSettings{Threshold: 5, Duration: 30 * time.Minute},
			Password: app.PasswordSettings{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireDigit:  true,
				RequireSymbol: true,
			},
		},
		Storage: app.StorageConfig{InvoiceBackend: "relational"},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	sessions, err := iauth.NewSessionService(db, jwtSvc, nil)
	require.NoError(t, err)

	credentials, err := iauth.NewCredentials(db, cfg.Auth.CredentialsConfig())
	require.NoError(t, err)

	router, err := api.NewRouter(db, store, cfg, sessions)
	require.NoError(t, err)

	return &Env{
		T:           t,
		DB:          db,
		Store:       store,
		Config:      cfg,
		Credentials: credentials,
		Sessions:    sessions,
		Router:      router,
	}
}

// CreateUser inserts an account with a random username and the given role.
func (e *Env) CreateUser(role models.Role, password string) *models.User {
	e.T.Helper()

	username := string(role) + "-" + uuid.NewString()[:8]
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(e.T, e.Credentials.SetPassword(user, password))
	require.NoError(e.T, e.DB.Create(user).Error)
	return user
}

// UserPayload captures the user fields returned from auth endpoints.
type UserPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResult bundles the data returned by POST /api/auth/login.
type LoginResult struct {
	User     UserPayload `json:"user"`
	Token    string      `json:"token"`
	Redirect string      `json:"redirect"`
}

// Login authenticates through the JSON API and returns the issued token.
func (e *Env) Login(username, password string) LoginResult {
	e.T.Helper()

	w := e.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.Equal(e.T, "success", resp.Status, w.Body.String())

	var result LoginResult
	DecodeInto(e.T, resp.Data, &result)
	require.NotEmpty(e.T, result.Token)
	require.Equal(e.T, username, result.User.Username)
	return result
}

// LoginAs creates a user with role and returns it with a bearer token.
func (e *Env) LoginAs(role models.Role) (*models.User, string) {
	e.T.Helper()
	user := e.CreateUser(role, DefaultPassword)
	return user, e.Login(user.Username, DefaultPassword).Token
}

// APIResponse represents the envelope returned by every JSON handler.
type APIResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes a JSON request against the router. A non-empty token is
// sent as a bearer credential.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	buf := bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// Page requests a page the way a browser would, sending token as the session
// cookie and values as a urlencoded form.
func (e *Env) Page(method, path string, values url.Values, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(e.T, err)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
