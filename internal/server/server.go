// Package server exposes the wall calculator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gowall/internal/config"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the API routes. Calculation routes are rate limited per
// client; /healthz is not.
func NewRouter(cfg config.ServerConfig, logger *zap.Logger) *mux.Router {
	return newRouter(NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst), logger)
}

func newRouter(limiter *IPRateLimiter, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{Logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.HandleFunc("/wall/calc", h.Calc).Methods(http.MethodPost)
	api.HandleFunc("/wall/report", h.Report).Methods(http.MethodPost)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(limiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var sweeper sync.WaitGroup
	sweeper.Add(1)
	go func() {
		defer sweeper.Done()
		limiter.Sweep(sweepCtx, limiterSweep, limiterIdle)
	}()
	defer func() {
		stopSweep()
		sweeper.Wait()
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
