// Package templates embeds the storefront's HTML templates.
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Parse returns page combined with the shared layout.
func Parse(page string) (*template.Template, error) {
	tmpl, err := template.ParseFS(FS, "layout.html", page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}
	return tmpl, nil
}
