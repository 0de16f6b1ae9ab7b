package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/models"
)

func TestAuthorizeMatrix(t *testing.T) {
	identity := func(role models.Role) *Identity {
		return &Identity{UserID: "u-" + string(role), Role: role}
	}

	cases := []struct {
		name     string
		identity *Identity
		required Capability
		want     Decision
	}{
		{"anonymous route, no session", nil, Anonymous, Allowed},
		{"anonymous route, public", identity(models.RolePublic), Anonymous, Allowed},
		{"staff route, no session", nil, Staff, Unauthenticated},
		{"staff route, empty identity", &Identity{}, Staff, Unauthenticated},
		{"staff route, public", identity(models.RolePublic), Staff, Forbidden},
		{"staff route, staff", identity(models.RoleStaff), Staff, Allowed},
		{"staff route, admin", identity(models.RoleAdmin), Staff, Allowed},
		{"admin route, no session", nil, Admin, Unauthenticated},
		{"admin route, staff", identity(models.RoleStaff), Admin, Forbidden},
		{"admin route, admin", identity(models.RoleAdmin), Admin, Allowed},
		{"admin route, unknown role", identity(models.Role("root")), Admin, Forbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Authorize(tc.identity, tc.required))
		})
	}
}

func TestDecisionAndCapabilityStrings(t *testing.T) {
	require.Equal(t, "staff", Staff.String())
	require.Equal(t, "admin", Admin.String())
	require.Equal(t, "anonymous", Anonymous.String())
	require.Equal(t, "forbidden", Forbidden.String())
	require.Equal(t, "unauthenticated", Unauthenticated.String())
	require.Equal(t, "allowed", Allowed.String())
}
