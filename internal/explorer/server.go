// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explorer serves an interactive view of the paper dataset: a year
// range selector, live charts of the filtered records, a preview table and
// a JSON API over the same aggregates.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/cord-explorer/internal/cache"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// Server is the explorer HTTP server. It owns the table cache; the loader
// it is given stays stateless.
type Server struct {
	cfg     types.ExplorerConfig
	tables  *cache.Tables
	logger  *zap.Logger
	metrics *metrics
	router  chi.Router
}

// New builds a Server that loads cfg.Data with load.
func New(cfg types.ExplorerConfig, load cache.LoadFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := newMetrics()
	s := &Server{
		cfg:     cfg,
		tables:  cache.New(load, m.cacheObserver()),
		logger:  logger.With(zap.String("component", "explorer")),
		metrics: m,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/charts", func(r chi.Router) {
		r.Get("/years.png", s.handleYearsChart)
		r.Get("/journals.png", s.handleJournalsChart)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Post("/reload", s.handleReload)
	})
	return r
}

// Handler returns the HTTP handler serving every explorer route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Warm loads the dataset into the cache so that a bad source fails at
// startup instead of on the first request.
func (s *Server) Warm(ctx context.Context) (*dataset.Table, error) {
	tbl, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("dataset loaded",
		zap.String("source", tbl.Source),
		zap.Int("raw_rows", tbl.Stats.RawRows),
		zap.Int("kept", tbl.Stats.Kept),
		zap.Int("dropped", tbl.Stats.Dropped),
		zap.Int("unparsed_dates", tbl.Stats.UnparsedDates))
	return tbl, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("explorer listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("explorer server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("explorer shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down explorer: %w", err)
	}
	return nil
}

func (s *Server) table(ctx context.Context) (*dataset.Table, error) {
	tbl, err := s.tables.Get(ctx, s.cfg.Data)
	if err != nil {
		return nil, err
	}
	s.metrics.records.Set(float64(tbl.Len()))
	return tbl, nil
}

// observe logs each request and counts it by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.observeRequest(route, status)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
