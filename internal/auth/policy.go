package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PasswordSymbols is the punctuation set that satisfies the symbol rule.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy describes the composition rules new passwords must meet.
type PasswordPolicy struct {
	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPasswordPolicy enables every rule with an eight character minimum.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireDigit:  true,
		RequireSymbol: true,
	}
}

// PolicyViolation names the first rule a password failed.
type PolicyViolation struct {
	Rule    string
	Message string
}

func (v *PolicyViolation) Error() string {
	return v.Message
}

// Validate returns a *PolicyViolation for the first failing rule, or nil.
// Rules are checked in order: length, upper, lower, digit, symbol.
func (p PasswordPolicy) Validate(raw string) error {
	if utf8.RuneCountInString(raw) < p.MinLength {
		return &PolicyViolation{
			Rule:    "min_length",
			Message: fmt.Sprintf("Password must be at least %d characters long", p.MinLength),
		}
	}

	var upper, lower, digit, symbol bool
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	switch {
	case p.RequireUpper && !upper:
		return &PolicyViolation{Rule: "upper", Message: "Password must contain at least one uppercase letter"}
	case p.RequireLower && !lower:
		return &PolicyViolation{Rule: "lower", Message: "Password must contain at least one lowercase letter"}
	case p.RequireDigit && !digit:
		return &PolicyViolation{Rule: "digit", Message: "Password must contain at least one number"}
	case p.RequireSymbol && !symbol:
		return &PolicyViolation{Rule: "symbol", Message: "Password must contain at least one special character"}
	}

	return nil
}
