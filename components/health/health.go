// components/health/health.go
//
// Liveness probe for load balancers and the jail supervisor.  GET /healthz
// answers 200 with a tiny JSON body as long as the process can serve HTTP.
// The component has no dependencies, so it registers itself from init().

package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/apoconsult/internal/component"
)

var started = time.Now()

type healthComponent struct{}

func (healthComponent) Name() string   { return "health" }
func (healthComponent) Prefix() string { return "/healthz" }

func (healthComponent) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"uptime_s": int64(time.Since(started).Seconds()),
		})
	})
	return r
}

func init() { component.Register(healthComponent{}) }
