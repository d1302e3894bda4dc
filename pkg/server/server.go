// Package server exposes the layout pipeline over HTTP.
//
// Routes (all under /api/v1):
//
//	GET  /health            liveness and build info
//	POST /layout            design JSON → layout document
//	POST /render?format=    design JSON → artifact (svg, png, pdf, json, dot)
//	GET  /defaults/{type}   starter design for a ceiling type
//	POST /publish/{id}      design JSON → layout published over MQTT
//
// Every response carries an X-Request-ID header, echoed from the request
// or generated.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ceilplan/pkg/config"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/pipeline"
)

// gracefulShutdownTimeout bounds how long Run waits for in-flight
// requests after its context is cancelled.
const gracefulShutdownTimeout = 10 * time.Second

// LayoutPublisher publishes calculated layouts. *publish.Publisher
// implements it.
type LayoutPublisher interface {
	PublishLayout(ctx context.Context, designID string, l lighting.Layout) error
}

// Deps are the dependencies of a Server.
type Deps struct {
	HTTP   config.HTTPConfig
	Render config.RenderConfig
	Runner *pipeline.Runner
	Logger *log.Logger
	// Publisher is optional; without it /publish answers 503.
	Publisher LayoutPublisher
}

// Server is the ceilplan HTTP API.
type Server struct {
	cfg       config.HTTPConfig
	render    config.RenderConfig
	runner    *pipeline.Runner
	logger    *log.Logger
	publisher LayoutPublisher
	handler   http.Handler
}

// New creates a server. Runner and Logger are required.
func New(deps Deps) (*Server, error) {
	if deps.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.HTTP.MaxBodyBytes <= 0 {
		deps.HTTP.MaxBodyBytes = config.Default().HTTP.MaxBodyBytes
	}
	if deps.Render.Scale <= 0 {
		deps.Render.Scale = pipeline.DefaultScale
	}
	s := &Server{
		cfg:       deps.HTTP,
		render:    deps.Render,
		runner:    deps.Runner,
		logger:    deps.Logger,
		publisher: deps.Publisher,
	}
	s.handler = s.buildRouter()
	return s, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       time.Duration(s.cfg.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.IdleTimeout) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	s.logger.Info("API server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
