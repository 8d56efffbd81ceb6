// Package api provides the HTTP API server and handlers for the SignalDeck dashboard.
package api

import (
	"cmp"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	// AllowedOrigins lists the browser origins allowed to call the API.
	AllowedOrigins []string
	Version        string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, opts Options, log *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		logger:   logger.OrDiscard(log),
	}

	// Middleware must be in place before huma mounts its own routes.
	s.setupMiddleware(opts.AllowedOrigins)

	humaConfig := huma.DefaultConfig("SignalDeck API", cmp.Or(opts.Version, "1.0.0"))
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// registerRoutes registers every huma operation.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerSavedSearchRoutes()
	s.registerHistoryRoutes()
	s.registerBookmarkRoutes()
	s.registerDiscoveryRoutes()
	s.registerArchiveRoutes()
	s.registerPreferenceRoutes()
}
