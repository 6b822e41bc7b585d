// internal/head/builder.go
//
// Builder collects the tags that belong inside a page's <head>.
//
// Context
// -------
// The contact page assembles its head per request: title, description,
// canonical link, the component's stylesheet and script, and a JSON-LD
// ContactPage block for search engines.  Handlers push typed values; the
// Builder escapes them and the template emits each slice with {{ .Head.X }}.
//
// Features
// --------
//   - SetTitle                    – single <title> (last call wins).
//   - Description, Canonical      – typed convenience over Meta / Link.
//   - Stylesheet, DeferScript     – asset tags, deduplicated by URL.
//   - JSONLD                      – marshals any value into
//     <script type="application/ld+json">.
//
// Notes
// -----
// • One Builder per render; no locking.
// • Attribute values are HTML-escaped; JSON-LD is marshalled with
//   encoding/json, which escapes <, >, and & so the payload cannot close
//   its own script element.
package head

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// Builder is not safe for concurrent use.
type Builder struct {
	title string

	metas   []string
	links   []string
	scripts []string
	jsonLD  []string

	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// ------------------------------------------------------------------
// Typed helpers
// ------------------------------------------------------------------

// Meta adds <meta name=… content=…>.  Repeating a name is ignored.
func (b *Builder) Meta(name, content string) {
	b.add("meta:"+name, &b.metas, fmt.Sprintf(`<meta name="%s" content="%s">`, esc(name), esc(content)))
}

// Description sets the description meta tag.
func (b *Builder) Description(text string) { b.Meta("description", text) }

// Canonical sets <link rel="canonical">.
func (b *Builder) Canonical(href string) {
	b.add("link:canonical", &b.links, fmt.Sprintf(`<link rel="canonical" href="%s">`, esc(href)))
}

// Stylesheet links a CSS file once.
func (b *Builder) Stylesheet(href string) {
	b.add("link:"+href, &b.links, fmt.Sprintf(`<link rel="stylesheet" href="%s">`, esc(href)))
}

// DeferScript adds a deferred external script once.
func (b *Builder) DeferScript(src string) {
	b.add("script:"+src, &b.scripts, fmt.Sprintf(`<script src="%s" defer></script>`, esc(src)))
}

// JSONLD marshals v as a structured-data block.
func (b *Builder) JSONLD(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("head: json-ld: %w", err)
	}
	b.jsonLD = append(b.jsonLD, string(raw))
	return nil
}

func (b *Builder) add(key string, tgt *[]string, tag string) {
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// ------------------------------------------------------------------
// Rendering helpers called from templates
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML   { return concat(b.metas) }
func (b *Builder) Links() template.HTML   { return concat(b.links) }
func (b *Builder) Scripts() template.HTML { return concat(b.scripts) }

// JSON returns every JSON-LD block wrapped in its script tag.
func (b *Builder) JSON() template.HTML {
	var sb strings.Builder
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	return template.HTML(sb.String())
}

func esc(s string) string { return template.HTMLEscapeString(s) }

// concat joins pre-escaped tags, one per line.
func concat(sl []string) template.HTML {
	return template.HTML(strings.Join(sl, "\n"))
}
