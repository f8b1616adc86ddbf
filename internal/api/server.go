package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/pipeline"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
)

// Server handles HTTP API requests for the groundwater assistant.
type Server struct {
	port   int
	server *http.Server
	logger *logging.Logger
}

// NewServer wires the chi router, middleware, CORS and routes. The
// registry backs the /metrics endpoint; gatherer may be the same
// registry instance.
func NewServer(port int, coordinator *pipeline.Coordinator, registry *prometheus.Registry, corsOrigins []string) *Server {
	logger := logging.GetLogger("api")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	queryHandler := NewQueryHandler(coordinator, logger)
	r.Post("/api/run_agent", queryHandler.Handle)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = WriteJSON(w, map[string]string{"status": "healthy"})
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return &Server{
		port:   port,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      r,
			ReadTimeout:  1 * time.Minute,
			WriteTimeout: 5 * time.Minute, // Pipeline runs block on model round-trips
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening for requests.
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	s.logger.Info("API server started and listening on port %d", s.port)
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error: %v", err)
		return err
	}
	s.logger.Info("API server stopped")
	return nil
}

// GetPort returns the port the server listens on.
func (s *Server) GetPort() int {
	return s.port
}
