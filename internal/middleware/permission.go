package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/permissions"
	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/metrics"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// LoginPath is where page routes send anonymous visitors.
const LoginPath = "/login"

// ForbiddenRenderer writes the page shown when a signed in user lacks the role.
type ForbiddenRenderer func(c *gin.Context, message string)

func decide(c *gin.Context, required permissions.Capability) permissions.Decision {
	decision := permissions.Authorize(IdentityFrom(c), required)
	metrics.AuthorizationDecisions.WithLabelValues(required.String(), decision.String()).Inc()
	return decision
}

// RequireAPI gates JSON routes, answering 401 or 403 in the error envelope.
func RequireAPI(required permissions.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch decide(c, required) {
		case permissions.Allowed:
			c.Next()
		case permissions.Unauthenticated:
			response.Error(c, errors.ErrUnauthenticated)
		default:
			response.Error(c, errors.ErrForbidden)
		}
	}
}

// RequirePage gates HTML routes. Anonymous visitors are redirected to the login
// page with the original path in next; signed in users without the role get
// the forbidden page.
func RequirePage(required permissions.Capability, forbidden ForbiddenRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch decide(c, required) {
		case permissions.Allowed:
			c.Next()
		case permissions.Unauthenticated:
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
		default:
			c.Status(http.StatusForbidden)
			if forbidden != nil {
				forbidden(c, "You do not have permission to access this page.")
			}
			c.Abort()
		}
	}
}
