// cmd/web/main.go
//
// ApoConsult – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Build the Vault client when VAULT_ADDR is set, so config can resolve
//     `vault:` references (relay token, CSRF key).
//
//  3. Load and validate configuration.
//
//  4. Start the daily rotating logger (tees to console when running in a
//     TTY) at the configured level.
//
//  5. Open the optional GeoLite2 database and pick the transport: the
//     webhook relay when an endpoint is configured, otherwise the simulated
//     one.
//
//  6. Build the router:
//
//     • RequestID → AccessLog → Recoverer → Security → ForceHTTPS → Enrich
//     • /metrics                 – Prometheus
//     • registered components    – health (init) and contact (built here)
//
//  7. Serve until SIGINT or SIGTERM, then drain gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/apoconsult/components/contact"
	_ "github.com/yanizio/apoconsult/components/health"
	"github.com/yanizio/apoconsult/internal/component"
	"github.com/yanizio/apoconsult/internal/config"
	"github.com/yanizio/apoconsult/internal/csrf"
	"github.com/yanizio/apoconsult/internal/logger"
	"github.com/yanizio/apoconsult/internal/message"
	"github.com/yanizio/apoconsult/internal/middleware"
	"github.com/yanizio/apoconsult/internal/requestinfo"
	"github.com/yanizio/apoconsult/internal/server"
	"github.com/yanizio/apoconsult/internal/vault"
)

const serverEnvPath = "/usr/local/etc/apoconsult/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Secrets and configuration ───────────────────────────────────
	//
	var res config.SecretResolver
	if vault.Enabled() {
		vc, err := vault.New(ctx, nil)
		if err != nil {
			log.Fatalf("vault: %v", err)
		}
		res = vc
	}

	root := config.RootDir()
	cfg, err := config.LoadFrom(ctx, root, res)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(root, runningInTTY(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 3.  Enrichment, transport, and CSRF ─────────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		logOut.Warnw("geo lookups disabled", "err", err)
	}

	transport := message.ForConfig(cfg, logOut.Named("transport"))

	signer, err := csrf.New(cfg.CSRF.Key, cfg.CSRF.MaxAge)
	if err != nil {
		logOut.Fatalw("csrf signer", "err", err)
	}
	if cfg.CSRF.Key == "" {
		logOut.Warnw("csrf.key not set, using a per-process key; forms expire on restart")
	}

	page, err := contact.New(contact.Deps{Config: cfg, Transport: transport, Signer: signer})
	if err != nil {
		logOut.Fatalw("contact component", "err", err)
	}
	component.Register(page)

	//
	// ── 4.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		middleware.AccessLog(logOut.Named("http")),
		chimw.Recoverer,
		middleware.Security,
		middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS),
		requestinfo.Enrich,
	)
	r.Handle("/metrics", promhttp.Handler())
	component.Mount(r)

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r, cfg.Contact.Timeout+cfg.Transport.AttemptTTL)
	if err := server.Run(ctx, srv, logOut); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("bye")
}
