package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	clock := newFakeClock()
	svc, err := NewJWTService(JWTConfig{Secret: "s3cret", Issuer: "aquaalert", Clock: clock.Now})
	require.NoError(t, err)
	require.Equal(t, DefaultSessionTTL, svc.TTL())

	token, err := svc.Sign("user-1", "session-1", clock.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "session-1", claims.SessionID)

	clock.Advance(2 * time.Minute)
	_, err = svc.Validate(token)
	require.Error(t, err)
}

func TestJWTServiceRequiresSecretAndClaims(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)

	svc, err := NewJWTService(JWTConfig{Secret: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Sign("", "session", time.Now().Add(time.Minute))
	require.Error(t, err)

	_, err = svc.Validate("")
	require.Error(t, err)
	_, err = svc.Validate("not.a.token")
	require.Error(t, err)
}

func TestJWTServiceRejectsWrongIssuer(t *testing.T) {
	clock := newFakeClock()
	issuerA, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "a", Clock: clock.Now})
	require.NoError(t, err)
	issuerB, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "b", Clock: clock.Now})
	require.NoError(t, err)

	token, err := issuerA.Sign("user", "session", clock.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = issuerB.Validate(token)
	require.Error(t, err)
}
