// Package server provides the HTTP surface: the chi router, the middleware
// chain, and the ask/health/rounds handlers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/karamlee/polyask/internal/config"
)

type Server struct {
	Router *chi.Mux

	host      string
	port      int
	portProbe int
	logger    *slog.Logger
	httpSrv   *http.Server
}

func New(cfg config.ServerConfig, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 120 * time.Second
	}

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(timeout))
	r.Use(middleware.Recoverer)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "polyask")
	})

	return &Server{
		Router:    r,
		host:      cfg.Host,
		port:      cfg.Port,
		portProbe: cfg.PortProbe,
		logger:    logger,
	}
}

// Start binds the listener and serves until Shutdown. When the configured
// port is taken, successive ports are probed up to the configured limit.
func (s *Server) Start() error {
	listener, port, err := s.listen()
	if err != nil {
		return err
	}
	s.port = port

	s.logger.Info("starting server",
		slog.String("host", s.host),
		slog.Int("port", port),
	)

	s.httpSrv = &http.Server{Handler: s.Router}
	if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight rounds.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Port returns the port actually bound, which may differ from the configured
// one when probing kicked in.
func (s *Server) Port() int {
	return s.port
}

func (s *Server) listen() (net.Listener, int, error) {
	attempts := s.portProbe
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for port := s.port; port < s.port+attempts; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, port))
		if err == nil {
			return listener, port, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("no free port in range %d-%d: %w", s.port, s.port+attempts-1, lastErr)
}
