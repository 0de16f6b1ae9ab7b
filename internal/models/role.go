package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Roles are totally ordered by Rank.
type Role string

const (
	RolePublic Role = "public"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// Roles lists every assignable role from least to most privileged.
var Roles = []Role{RolePublic, RoleStaff, RoleAdmin}

// ParseRole normalises a role name. "user" is accepted as an alias of public.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "public", "user":
		return RolePublic, nil
	case "staff":
		return RoleStaff, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Rank orders roles; unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RolePublic:
		return 1
	case RoleStaff:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r is at or above required.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.Rank() >= required.Rank()
}

// IsAdmin is true only for administrators.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsStaff is true for staff and administrators.
func (r Role) IsStaff() bool { return r.AtLeast(RoleStaff) }

func (r Role) String() string { return string(r) }
