package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DateLayout is how dates are shown and pre-filled in forms.
const DateLayout = "2006-01-02"

// Templates parses the embedded page templates. Each page is addressed by its
// file name, e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the stylesheet and scripts served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":  formatDate,
		"money": func(v float64) string { return fmt.Sprintf("£%.2f", v) },
		"litres": func(v float64) string {
			return fmt.Sprintf("%.0f L", v)
		},
		"percent": func(part, whole float64) int {
			if whole <= 0 {
				return 0
			}
			return int(part / whole * 100)
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
}

// formatDate accepts time.Time or *time.Time; zero and nil render as "".
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	default:
		return ""
	}
}
