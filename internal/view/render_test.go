package view

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

var fsys = fstest.MapFS{
	"tpl/page.html":  {Data: []byte(`<p>{{ .Name }}</p>{{ template "badge" (dict "ttl" .TTL) }}`)},
	"tpl/parts.html": {Data: []byte(`{{ define "badge" }}<i data-ms="{{ ms .ttl }}">{{ shout "hi" }}</i>{{ end }}`)},
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(fsys, "tpl", template.FuncMap{"shout": func(s string) string { return s + "!" }})
	require.NoError(t, err)
	return e
}

func TestRender_FileTemplate(t *testing.T) {
	rec := httptest.NewRecorder()
	err := newEngine(t).Render(rec, http.StatusUnprocessableEntity, "page",
		map[string]any{"Name": "<Ann>", "TTL": 5 * time.Second})
	require.NoError(t, err)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, `<p>&lt;Ann&gt;</p><i data-ms="5000">hi!</i>`, rec.Body.String())
}

func TestRenderToString_DefinedTemplate(t *testing.T) {
	out, err := newEngine(t).RenderToString("badge", map[string]any{"ttl": time.Second})
	require.NoError(t, err)
	require.Equal(t, template.HTML(`<i data-ms="1000">hi!</i>`), out)
}

func TestRender_UnknownTemplateLeavesResponseUntouched(t *testing.T) {
	rec := httptest.NewRecorder()
	require.Error(t, newEngine(t).Render(rec, http.StatusOK, "nope", nil))
	require.Empty(t, rec.Body.String())
}

func TestNew_ParseError(t *testing.T) {
	_, err := New(fstest.MapFS{"tpl/bad.html": {Data: []byte(`{{ .Name `)}}, "tpl", nil)
	require.Error(t, err)
}
