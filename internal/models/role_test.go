package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"public": RolePublic,
		"user":   RolePublic,
		" Staff": RoleStaff,
		"ADMIN":  RoleAdmin,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got)
	}

	_, err := ParseRole("root")
	require.Error(t, err)
}

func TestRoleOrderIsTotal(t *testing.T) {
	for i, lower := range Roles {
		for j, higher := range Roles {
			require.Equal(t, i <= j, higher.AtLeast(lower), "%s >= %s", higher, lower)
		}
	}
	require.False(t, Role("").AtLeast(RolePublic))
}

func TestRoleDerivedProperties(t *testing.T) {
	require.True(t, RoleAdmin.IsAdmin())
	require.True(t, RoleAdmin.IsStaff())
	require.False(t, RoleStaff.IsAdmin())
	require.True(t, RoleStaff.IsStaff())
	require.False(t, RolePublic.IsStaff())
	require.False(t, Role("ghost").IsStaff())
}
