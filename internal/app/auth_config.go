package app

import (
	"time"

	"github.com/aquaalert/aquaalert/internal/auth"
)

// AuthConfig captures all authentication-related settings.
type AuthConfig struct {
	Session        SessionSettings        `mapstructure:"session"`
	Lockout        LockoutSettings        `mapstructure:"lockout"`
	Password       PasswordSettings       `mapstructure:"password"`
	BootstrapAdmin BootstrapAdminSettings `mapstructure:"bootstrap_admin"`
}

// SessionSettings configures signed session tokens.
type SessionSettings struct {
	Secret        string        `mapstructure:"secret"`
	Issuer        string        `mapstructure:"issuer"`
	TTL           time.Duration `mapstructure:"ttl"`
	RevokeOnStart bool          `mapstructure:"revoke_on_start"`
}

// LockoutSettings controls failed login lockout.
type LockoutSettings struct {
	Threshold int           `mapstructure:"threshold"`
	Duration  time.Duration `mapstructure:"duration"`
}

// PasswordSettings mirrors auth.PasswordPolicy.
type PasswordSettings struct {
	MinLength     int  `mapstructure:"min_length"`
	RequireUpper  bool `mapstructure:"require_upper"`
	RequireLower  bool `mapstructure:"require_lower"`
	RequireDigit  bool `mapstructure:"require_digit"`
	RequireSymbol bool `mapstructure:"require_symbol"`
}

// BootstrapAdminSettings seeds the first administrator on an empty user table.
type BootstrapAdminSettings struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// JWTServiceConfig converts AuthConfig into the parameters expected by the JWT service.
func (c AuthConfig) JWTServiceConfig() auth.JWTConfig {
	ttl := c.Session.TTL
	if ttl <= 0 {
		ttl = auth.DefaultSessionTTL
	}

	return auth.JWTConfig{
		Secret: c.Session.Secret,
		Issuer: c.Session.Issuer,
		TTL:    ttl,
	}
}

// CredentialsConfig converts AuthConfig into Credentials parameters.
func (c AuthConfig) CredentialsConfig() auth.CredentialsConfig {
	threshold := c.Lockout.Threshold
	if threshold <= 0 {
		threshold = auth.DefaultLockoutThreshold
	}

	duration := c.Lockout.Duration
	if duration <= 0 {
		duration = auth.DefaultLockoutDuration
	}

	return auth.CredentialsConfig{
		Policy:           c.PasswordPolicy(),
		LockoutThreshold: threshold,
		LockoutDuration:  duration,
	}
}

// PasswordPolicy converts the password settings, falling back to the default
// minimum length when unset.
func (c AuthConfig) PasswordPolicy() auth.PasswordPolicy {
	policy := auth.PasswordPolicy{
		MinLength:     c.Password.MinLength,
		RequireUpper:  c.Password.RequireUpper,
		RequireLower:  c.Password.RequireLower,
		RequireDigit:  c.Password.RequireDigit,
		RequireSymbol: c.Password.RequireSymbol,
	}
	if policy.MinLength <= 0 {
		policy.MinLength = auth.DefaultPasswordPolicy().MinLength
	}
	return policy
}
