package services

import (
	"context"
	"strings"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// Filter holds exact-match list filters keyed by column name.
type Filter map[string]string

// allowed keeps only non-empty values for the listed columns.
func (f Filter) allowed(columns ...string) map[string]any {
	out := map[string]any{}
	for _, column := range columns {
		if value := strings.TrimSpace(f[column]); value != "" {
			out[column] = value
		}
	}
	return out
}
