// file: services/markdown.go
package services

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// RenderMarkdown converts a club description to HTML. Raw HTML in the source is escaped.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark omits raw HTML by default
}
