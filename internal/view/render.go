// internal/view/render.go
//
// Central view engine: one parsed template set per component, func-map
// injection, and the execName lookup rule.
//
// Public helpers
// --------------
//   - New            – parse every *.html under a directory of an fs.FS.
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML (fragments, partial refreshes).
//
// Components embed their templates (//go:embed templates/*.html) and hand the
// embed.FS to New once at construction time.  Parsing at startup means a
// broken template fails the boot instead of the first request.
//
// All templates in the same directory are parsed as one set so sub-templates
// ({{ template "modal" . }}) work out-of-the-box.
//
// execName() chooses the template to execute:
//   – If the set contains "<name>.html", we run that (file has no define).
//   – Else we fall back to "<name>" (root template defined via {{ define }}).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

// Engine is safe for concurrent use after New returns.
type Engine struct {
	t *template.Template
}

// New parses every *.html file in dir of fsys.  extra is merged over the
// built-in func map.
func New(fsys fs.FS, dir string, extra template.FuncMap) (*Engine, error) {
	fm := baseFuncMap()
	for k, v := range extra {
		fm[k] = v
	}
	t, err := template.New(dir).Funcs(fm).ParseFS(fsys, dir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse %s: %w", dir, err)
	}
	return &Engine{t: t}, nil
}

// Render executes name and streams it to w with the given status.  The body
// is buffered first so a template error can still become a 500.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.t.ExecuteTemplate(&buf, e.execName(name), data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderToString executes name and returns the HTML.
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.t.ExecuteTemplate(&buf, e.execName(name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

//
// helpers
//

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in code).
func (e *Engine) execName(name string) string {
	if tmpl := e.t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

func baseFuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": dict,
		"ms":   func(d time.Duration) int64 { return d.Milliseconds() },
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
