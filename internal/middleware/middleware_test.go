package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/apoconsult/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestForceHTTPS(t *testing.T) {
	h := ForceHTTPS(true)(ok)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"plain redirects", func(r *http.Request) {}, http.StatusPermanentRedirect},
		{"localhost passes", func(r *http.Request) { r.Host = "localhost:8080" }, http.StatusNoContent},
		{"tls passes", func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, http.StatusNoContent},
		{"proxy passes", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS") }, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://apo.example/contact?x=1", nil)
			tc.setup(r)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			require.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusPermanentRedirect {
				require.Equal(t, "https://apo.example/contact?x=1", rec.Header().Get("Location"))
			}
		})
	}
}

func TestForceHTTPS_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	ForceHTTPS(false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://apo.example/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSecurity_HeadersPresent(t *testing.T) {
	rec := httptest.NewRecorder()
	Security(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self'")
	require.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestAccessLog_LogsRoutePattern(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core).Sugar()

	var sawLogger bool
	r := chi.NewRouter()
	r.Use(chimw.RequestID, AccessLog(base))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		sawLogger = logger.FromContext(r.Context()) != zap.S()
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.True(t, sawLogger, "handler sees request-scoped logger")
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "/items/{id}", fields["route"])
	require.EqualValues(t, http.StatusAccepted, fields["status"])
	require.NotEmpty(t, fields["req_id"])
}
