// Package server provides the HTTP transport for the extraction pipeline:
// request validation, batching limits, and the success/error envelope around
// the always-valid pipeline result.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hireoo/extraction-service/internal/config"
	"github.com/hireoo/extraction-service/internal/pipeline"
)

// Version is the service version reported by the health endpoints.
const Version = "1.0.0"

// shutdownGrace bounds how long in-flight requests may finish after a
// termination signal.
const shutdownGrace = 10 * time.Second

// Server is the HTTP front end around one pipeline instance. The pipeline is
// stateless per call, so a single instance serves all requests concurrently.
type Server struct {
	httpServer   *http.Server
	pipeline     *pipeline.Pipeline
	cfg          *config.Config
	validate     *validator.Validate
	capabilities []string
	startTime    time.Time
	log          zerolog.Logger
}

// New creates the server. capabilities names the loaded backing capabilities
// (stripper, recognizer, model) for health reporting.
func New(cfg *config.Config, pipe *pipeline.Pipeline, capabilities []string) *Server {
	s := &Server{
		pipeline:     pipe,
		cfg:          cfg,
		validate:     validator.New(),
		capabilities: capabilities,
		startTime:    time.Now(),
		log:          log.With().Str("component", "server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/extract", s.handleExtract)
	mux.HandleFunc("POST /api/v1/extract/batch", s.handleExtractBatch)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.withRequestLog(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("extraction service listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
