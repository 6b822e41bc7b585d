// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name>.  Components with
// no dependencies call component.Register() from an init() function;
// components that need configuration are built in cmd/web and registered
// there.  Mount attaches every component's Routes() at its Prefix (“/” by
// default) on the root router.  chi refuses two mounts on one prefix, so
// only one component may claim “/”.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Routes() should mount BOTH page and API endpoints, e.g:
//
//	r := chi.NewRouter()
//	r.Get("/contact", showContact)
//	r.Post("/api/contact", submitJSON)
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

// Prefixer is optional.  Components that own a single path subtree, such
// as /healthz, implement it to mount beside the “/” component.
type Prefixer interface {
	Prefix() string
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register adds c, replacing any component with the same name.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount attaches every registered component to r.
func Mount(r chi.Router) {
	for _, c := range All() {
		prefix := "/"
		if p, ok := c.(Prefixer); ok {
			prefix = p.Prefix()
		}
		r.Mount(prefix, c.Routes())
	}
}
