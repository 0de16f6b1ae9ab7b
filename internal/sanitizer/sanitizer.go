// Package sanitizer strips markup from free text before it is stored.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	once.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML element from value and trims surrounding space.
// Entities produced by the policy are decoded again so plain punctuation such
// as "&" or quotes survives a round trip.
func Text(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(value)))
}
