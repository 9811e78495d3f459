package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/phishguard/internal/config"
	"github.com/ignite/phishguard/internal/tracking"
)

// Server wraps the HTTP server and route tree for the admin API and
// the recipient-facing tracking endpoints.
type Server struct {
	config  config.ServerConfig
	handler *chi.Mux
	server  *http.Server
}

func NewServer(cfg config.ServerConfig, h *Handlers, trackingHandler *tracking.Handler) *Server {
	return &Server{
		config:  cfg,
		handler: SetupRoutes(h, trackingHandler),
	}
}

// ListenAndServe starts the HTTP server on the configured address and
// blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
