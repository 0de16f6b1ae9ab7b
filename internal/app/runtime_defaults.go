package app

import (
	"fmt"
	"strings"

	"github.com/aquaalert/aquaalert/pkg/crypto"
)

const sessionSecretBytes = 48

// ApplyRuntimeDefaults ensures critical secrets are populated even when no configuration file is supplied.
// It returns a map describing which keys were generated so callers can log the event without exposing values.
// A generated session secret only lives as long as the process, so every restart invalidates old tokens.
func ApplyRuntimeDefaults(cfg *Config) (map[string]bool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	generated := make(map[string]bool)

	if strings.TrimSpace(cfg.Auth.Session.Secret) == "" {
		secret, err := crypto.GenerateToken(sessionSecretBytes)
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.Auth.Session.Secret = secret
		generated["auth.session.secret"] = true
	}

	return generated, nil
}
