// Package web embeds the HTML templates and static assets of the site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates static
var files embed.FS

// Funcs are the helpers available to every template
var Funcs = template.FuncMap{
	"date": func(t time.Time, layout string) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"year": func() int {
		return time.Now().Year()
	},
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

// Templates parses all page and partial templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html", "templates/admin/*.html")
}

// Static returns the static asset tree rooted at its top directory
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
