// internal/middleware/access.go
//
// Access log and request counter.
//
// Every response produces one INFO line (method, route, status, bytes, and
// latency) on the request-scoped logger, and bumps http_requests_total.  The
// route label is chi's matched pattern, not the raw path, so label
// cardinality stays bounded.
//
// The wrapper also stores a per-request child logger in the context, tagged
// with chi's request ID, so handlers can call logger.FromContext(ctx).

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/apoconsult/internal/logger"
	"github.com/yanizio/apoconsult/internal/metrics"
)

// AccessLog returns a middleware bound to base.  Install it after
// chimw.RequestID so the ID is available.
func AccessLog(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop().Sugar()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := base.With("req_id", chimw.GetReqID(r.Context()))
			ctx := logger.WithContext(r.Context(), l)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			metrics.HTTPRequestsTotal.
				WithLabelValues(route, r.Method, strconv.Itoa(status)).
				Inc()

			l.Infow("http",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"dur_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// routePattern reads the matched pattern once routing has finished.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
