// Package scaffold provides embedded front-matter templates for new blog
// posts and docs pages, used by the localhake CLI.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// Templates contains the page templates, one per content kind.
// Files use Go text/template syntax and have a .md.tmpl suffix.
//
//go:embed templates/*.md.tmpl
var Templates embed.FS

// Data holds the template variables passed to every page template.
type Data struct {
	Title  string
	Slug   string
	Date   string
	Author string
}

// Render executes the template for kind ("blog" or "docs") with data.
func Render(kind string, data Data) ([]byte, error) {
	name := "templates/" + kind + ".md.tmpl"
	src, err := Templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("scaffold: no template for %q", kind)
	}
	tmpl, err := template.New(kind).Funcs(template.FuncMap{"quote": quote}).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
