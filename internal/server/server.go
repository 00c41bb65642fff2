// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/pipeline"
	"github.com/ppiankov/truthlens/internal/worker"
)

// Analyzer is the part of the pipeline the API needs
type Analyzer interface {
	Analyze(ctx context.Context, in model.AnalysisInput) (*model.AnalysisResult, error)
	Get(ctx context.Context, id string) (*model.AnalysisResult, error)
}

// Server serves the TruthLens API
type Server struct {
	cfg      model.ServerConfig
	analyzer Analyzer
	renderer *pipeline.Renderer
	limiter  *worker.Limiter
	trusted  []netip.Prefix
	logger   zerolog.Logger
	now      func() time.Time
	handler  http.Handler
}

// New creates a server for analyzer
func New(cfg model.ServerConfig, analyzer Analyzer, logger zerolog.Logger) (*Server, error) {
	trusted, err := parseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		renderer: pipeline.NewRenderer(true),
		limiter:  worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		trusted:  trusted,
		logger:   logger,
		now:      time.Now,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	api := r
	if base := strings.TrimRight(s.cfg.BasePath, "/"); base != "" {
		api = r.PathPrefix(base).Subrouter()
	}

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.Handle("/analyze", s.rateLimit(http.HandlerFunc(s.handleAnalyze))).Methods(http.MethodPost)
	api.Handle("/analysis/{id}", s.rateLimit(http.HandlerFunc(s.handleGet))).Methods(http.MethodGet)
	api.Handle("/analysis/{id}/report", s.rateLimit(http.HandlerFunc(s.handleReport))).Methods(http.MethodGet)

	return s.requestID(s.accessLog(s.recoverer(r)))
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and shuts down gracefully when ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.limiter.Janitor(janitorCtx, s.cfg.RateLimit.CleanupInterval, s.cfg.RateLimit.IdleTimeout, func(removed, remaining int) {
		if removed > 0 {
			s.logger.Debug().Int("evicted", removed).Int("tracked", remaining).Msg("rate limiter cleanup")
		}
	})

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Str("base_path", s.cfg.BasePath).Msg("API server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
