// internal/server/server.go
//
// HTTP server helper with robust timeouts and graceful shutdown.
//
// Production hardening recommends:
//
//   • ReadHeaderTimeout – abort slow-loris headers (5 s)
//   • ReadTimeout       – cap request body reads (10 s)
//   • WriteTimeout      – cap total response time (15 s)
//   • IdleTimeout       – close keep-alives on idle clients (60 s)
//
// The write timeout must stay above the contact send timeout, otherwise a
// slow relay would cut the response before the workflow settles.  Run ties
// the listener to a context, so cmd/web stops cleanly on SIGINT or SIGTERM.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownGrace bounds how long in-flight requests may finish after the
// context ends.
const ShutdownGrace = 15 * time.Second

// New constructs an *http.Server with sensible defaults.  writeTimeout
// overrides the 15 s default when it is larger.
func New(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	wt := 15 * time.Second
	if writeTimeout > wt {
		wt = writeTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      wt,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves srv until ctx ends, then shuts down gracefully.  It returns
// nil on a clean shutdown.
func Run(ctx context.Context, srv *http.Server, log *zap.SugaredLogger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		log.Infow("shutting down", "grace", ShutdownGrace)
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
