package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPasswordPolicyRules(t *testing.T) {
	policy := DefaultPasswordPolicy()

	cases := []struct {
		password string
		rule     string
	}{
		{"Ab1!", "min_length"},
		{"lowercase1!", "upper"},
		{"UPPERCASE1!", "lower"},
		{"NoDigits!!", "digit"},
		{"NoSymbol12", "symbol"},
		{"Abcdef1-", "symbol"},
		{"Abcdef1!", ""},
		{`Tanker"2025`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			err := policy.Validate(tc.password)
			if tc.rule == "" {
				require.NoError(t, err)
				return
			}

			var violation *PolicyViolation
			require.True(t, errors.As(err, &violation), "expected violation, got %v", err)
			require.Equal(t, tc.rule, violation.Rule)
			require.NotEmpty(t, violation.Message)
		})
	}
}

func TestPasswordPolicyDisabledRules(t *testing.T) {
	policy := PasswordPolicy{MinLength: 4}
	require.NoError(t, policy.Validate("abcd"))
	require.Error(t, policy.Validate("abc"))
}

func TestPasswordPolicyAcceptsExactlyCompliantPasswords(t *testing.T) {
	alphabet := []rune("abcxyzABCXYZ0189" + PasswordSymbols + "-_ ~")
	policy := DefaultPasswordPolicy()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringOfN(rapid.RuneFrom(alphabet), 0, 16, -1).Draw(t, "password")

		compliant := len([]rune(raw)) >= 8 &&
			strings.ContainsAny(raw, "ABCXYZ") &&
			strings.ContainsAny(raw, "abcxyz") &&
			strings.ContainsAny(raw, "0189") &&
			strings.ContainsAny(raw, PasswordSymbols)

		err := policy.Validate(raw)
		if compliant && err != nil {
			t.Fatalf("compliant password %q rejected: %v", raw, err)
		}
		if !compliant && err == nil {
			t.Fatalf("non-compliant password %q accepted", raw)
		}
	})
}
