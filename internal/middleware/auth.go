package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	iauth "github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/permissions"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// SessionCookieName carries the signed session token for browser clients.
const SessionCookieName = "aquaalert_session"

const (
	CtxIdentityKey = "identity"
	CtxUserKey     = "user"
)

// Authenticate resolves the session token from the session cookie or a Bearer
// Authorization header and stores the identity on the context. It never aborts:
// requests without a valid session continue anonymously and the permission
// gates decide what they may reach.
func Authenticate(sessions *iauth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" || sessions == nil {
			c.Next()
			return
		}

		user, session, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.WithModule("http").Debug("session rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(CtxUserKey, user)
		c.Set(CtxIdentityKey, &permissions.Identity{
			UserID:    user.ID,
			Username:  user.Username,
			Role:      user.Role,
			SessionID: session.ID,
		})
		c.Next()
	}
}

// TokenFromRequest returns the session token, preferring the Authorization header.
func TokenFromRequest(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// IdentityFrom returns the request identity, or nil for anonymous requests.
func IdentityFrom(c *gin.Context) *permissions.Identity {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*permissions.Identity)
	return identity
}

// UserFrom returns the signed in user, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
