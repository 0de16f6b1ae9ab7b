// Package permissions decides whether an identity may use a capability. The
// decision is transport neutral; JSON and page middleware render it differently.
package permissions

import "github.com/aquaalert/aquaalert/internal/models"

// Capability is the minimum privilege a route requires.
type Capability int

const (
	// Anonymous routes are open to everyone, signed in or not.
	Anonymous Capability = iota
	// Staff routes need a staff or admin session.
	Staff
	// Admin routes need an admin session.
	Admin
)

func (c Capability) String() string {
	switch c {
	case Anonymous:
		return "anonymous"
	case Staff:
		return "staff"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// role returns the lowest role satisfying c.
func (c Capability) role() models.Role {
	switch c {
	case Staff:
		return models.RoleStaff
	case Admin:
		return models.RoleAdmin
	default:
		return models.RolePublic
	}
}

// Decision is the tagged outcome of Authorize.
type Decision int

const (
	Allowed Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Identity is the authenticated principal behind a request.
type Identity struct {
	UserID    string
	Username  string
	Role      models.Role
	SessionID string
}

// Authenticated reports whether the identity came from a live session.
func (i *Identity) Authenticated() bool {
	return i != nil && i.UserID != ""
}

// Authorize decides whether identity may use required. A nil identity is anonymous.
func Authorize(identity *Identity, required Capability) Decision {
	if required == Anonymous {
		return Allowed
	}
	if !identity.Authenticated() {
		return Unauthenticated
	}
	if identity.Role.AtLeast(required.role()) {
		return Allowed
	}
	return Forbidden
}
