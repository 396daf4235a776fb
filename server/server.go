// Package server exposes the schedule engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shift-scheduler/logger"
	"shift-scheduler/metrics"
	"shift-scheduler/scheduler"
	"shift-scheduler/store"
)

// Options configures the HTTP surface.
type Options struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxConcurrent int
	// MetricsPath mounts the Prometheus handler; empty disables it.
	MetricsPath string
}

// Server routes API requests to the engine and the result store.
type Server struct {
	opts   Options
	engine *scheduler.Engine
	store  store.Store
	log    logger.Logger
	newID  func() string

	Mux *chi.Mux
}

// New builds the router. A nil log discards log output.
func New(opts Options, engine *scheduler.Engine, st store.Store, log logger.Logger) *Server {
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 64
	}
	s := &Server{
		opts:   opts,
		engine: engine,
		store:  st,
		log:    log,
		newID:  uuid.NewString,
		Mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.Use(middleware.RequestID)
	s.Mux.Use(middleware.RealIP)
	s.Mux.Use(s.requestLogger)
	s.Mux.Use(s.instrument)
	s.Mux.Use(middleware.Recoverer)

	s.Mux.Get("/healthz", s.health)
	if s.opts.MetricsPath != "" {
		s.Mux.Handle(s.opts.MetricsPath, promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.Mux.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Throttle(s.opts.MaxConcurrent))
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/generate", s.generate)
			r.Get("/{id}", s.getSchedule)
		})
		r.Get("/teams/{teamId}/schedules/{year}/{week}", s.latestSchedule)
	})
}

// ServeHTTP lets the server be used as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Mux.ServeHTTP(w, r)
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Mux,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen %s: %w", s.opts.Addr, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Infof("server stopped")
	return nil
}
