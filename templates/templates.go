// Package templates embeds the web surface's HTML templates.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Load parses every embedded page.
func Load() (*template.Template, error) {
	return template.ParseFS(FS, "*.html")
}
