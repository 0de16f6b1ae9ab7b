package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/auth"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig("testdata")
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "console", cfg.Server.LogFormat)
	require.True(t, cfg.Server.SecureCookies)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Host)
	require.Equal(t, 5433, cfg.Database.Port)
	require.Equal(t, "fleet", cfg.Database.Name)
	require.Equal(t, "require", cfg.Database.Options["sslmode"])

	require.Equal(t, "session-secret", cfg.Auth.Session.Secret)
	require.Equal(t, 45*time.Minute, cfg.Auth.Session.TTL)
	require.False(t, cfg.Auth.Session.RevokeOnStart)
	require.Equal(t, 7, cfg.Auth.Lockout.Threshold)
	require.Equal(t, 20*time.Minute, cfg.Auth.Lockout.Duration)
	require.Equal(t, 12, cfg.Auth.Password.MinLength)
	require.True(t, cfg.Auth.Password.RequireUpper)
	require.False(t, cfg.Auth.Password.RequireSymbol)
	require.Equal(t, "admin", cfg.Auth.BootstrapAdmin.Username)

	require.Equal(t, "s3", cfg.Storage.Documents)
	require.Equal(t, "document", cfg.Storage.InvoiceBackend)
	require.Equal(t, "aquaalert-data", cfg.Storage.S3.Bucket)
	require.Equal(t, "prod/data.json", cfg.Storage.S3.Key)
	require.Equal(t, "eu-west-2", cfg.Storage.S3.Region)
	require.True(t, cfg.Storage.S3.UsePathStyle)

	require.False(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/aquaalert.sqlite", cfg.Database.Path)
	require.Equal(t, 30*time.Minute, cfg.Auth.Session.TTL)
	require.True(t, cfg.Auth.Session.RevokeOnStart)
	require.Equal(t, 5, cfg.Auth.Lockout.Threshold)
	require.Equal(t, 30*time.Minute, cfg.Auth.Lockout.Duration)
	require.Equal(t, auth.DefaultPasswordPolicy(), cfg.Auth.PasswordPolicy())
	require.Equal(t, "file", cfg.Storage.Documents)
	require.Equal(t, "relational", cfg.Storage.InvoiceBackend)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AQUAALERT_SERVER_PORT", "7070")
	t.Setenv("AQUAALERT_AUTH_LOCKOUT_DURATION", "1h")
	t.Setenv("AQUAALERT_STORAGE_INVOICE_BACKEND", "document")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, time.Hour, cfg.Auth.Lockout.Duration)
	require.Equal(t, "document", cfg.Storage.InvoiceBackend)
}

func TestAuthConfigAdapters(t *testing.T) {
	cfg := AuthConfig{
		Session: SessionSettings{Secret: "secret", Issuer: "issuer", TTL: 10 * time.Minute},
		Lockout: LockoutSettings{Threshold: 3, Duration: time.Minute},
		Password: PasswordSettings{
			MinLength:    10,
			RequireUpper: true,
		},
	}

	require.Equal(t, auth.JWTConfig{Secret: "secret", Issuer: "issuer", TTL: 10 * time.Minute}, cfg.JWTServiceConfig())

	creds := cfg.CredentialsConfig()
	require.Equal(t, 3, creds.LockoutThreshold)
	require.Equal(t, time.Minute, creds.LockoutDuration)
	require.Equal(t, auth.PasswordPolicy{MinLength: 10, RequireUpper: true}, creds.Policy)
}

func TestAuthConfigAdaptersFallback(t *testing.T) {
	var cfg AuthConfig

	require.Equal(t, auth.DefaultSessionTTL, cfg.JWTServiceConfig().TTL)

	creds := cfg.CredentialsConfig()
	require.Equal(t, auth.DefaultLockoutThreshold, creds.LockoutThreshold)
	require.Equal(t, auth.DefaultLockoutDuration, creds.LockoutDuration)
	require.Equal(t, 8, creds.Policy.MinLength)
}
