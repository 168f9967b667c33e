// Package server provides HTTP server management and lifecycle handling for the patient API.
// It includes server setup, middleware configuration, route management, and graceful shutdown
// capabilities with proper error handling and logging.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/metricare/patient-api/config"
	"github.com/metricare/patient-api/contraindications"
	"github.com/metricare/patient-api/handlers"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies bundles everything the route handlers need
type Dependencies struct {
	Directory interfaces.PatientSource
	Labels    interfaces.LabelSource
	Generator interfaces.TextGenerator
	Pipeline  *contraindications.Pipeline
	Status    interfaces.StatusStore
	Validator interfaces.InputValidator
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router chi.Router
	deps   Dependencies
	config *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler: router,
			Addr:    cfg.Address + ":" + cfg.Port,
			// WriteTimeout leaves headroom over the contraindication
			// request budget so slow pipeline runs are not cut off mid-response.
			ReadTimeout:  15 * time.Second,
			WriteTimeout: time.Duration(cfg.RequestTimeoutSeconds+5) * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		deps:   deps,
		config: cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	requestTimeout := time.Duration(s.config.RequestTimeoutSeconds) * time.Second

	// Patient routes
	s.router.Get("/patient/{patientId}", handlers.GetPatient(s.deps.Directory, s.deps.Validator))
	s.router.Get("/patient/{patientId}/history", handlers.GetHistory(s.deps.Directory, s.deps.Validator))
	s.router.Get("/patient/{patientId}/medications", handlers.GetMedications(s.deps.Directory, s.deps.Validator))
	s.router.Get("/patient/{patientId}/family_history", handlers.GetFamilyHistory(s.deps.Directory, s.deps.Validator))
	s.router.Get("/patient/{patientId}/contraindications",
		handlers.GetContraindications(s.deps.Directory, s.deps.Pipeline, s.deps.Validator, requestTimeout))
	s.router.Post("/patient/summary", handlers.PostSummary(s.deps.Generator, requestTimeout))

	// Drug routes
	s.router.Get("/drugs/search", handlers.DrugsSearch(s.deps.Labels, s.deps.Validator))
	s.router.Get("/drugs/{name}", handlers.DrugInfo(s.deps.Labels, s.deps.Validator))

	// Operational routes
	s.router.Get("/health", handlers.HealthCheck(s.deps.Status, s.deps.Generator))
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/", handlers.Root())
}

// Start starts the server
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// Router exposes the configured router, used in tests
func (s *Server) Router() chi.Router {
	return s.router
}

// startProfilingServer starts the pprof profiling server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Error("Profiling server failed", "error", err)
		}
	}()
}
