// Package api provides the HTTP API server and handlers for the Cinematic application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cinematicapp/cinematic-server/internal/service"
	"github.com/cinematicapp/cinematic-server/internal/sse"
	"github.com/cinematicapp/cinematic-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Identity  *service.IdentityService
	Prefs     *service.PreferenceService
	Saved     *service.SavedService
	Discovery *service.DiscoveryService
	Search    *service.MovieSearcher
	Recommend *service.RecommendService
}

// Server is the HTTP API server.
type Server struct {
	store      *store.Store
	services   *Services
	router     *chi.Mux
	api        huma.API
	sseHandler *sse.Handler
	logger     *slog.Logger

	authRateLimiter *RateLimiter
}

// NewServer creates the API server with all routes registered.
func NewServer(st *store.Store, services *Services, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		sseHandler:      sseHandler,
		logger:          logger,
		authRateLimiter: NewRateLimiter(30, time.Minute, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Cinematic API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerPreferenceRoutes()
	s.registerProfileRoutes()
	s.registerSavedRoutes()
	s.registerDiscoverRoutes()
	s.registerMovieRoutes()
	s.registerBookRoutes()

	// SSE streams bypass the generated API surface.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	return s
}

// setupMiddleware configures the chi middleware stack. Order matters:
// chi requires all Use calls before the first route is registered.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The SPA is served from a different origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Credential endpoints are throttled per client IP.
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, "/api/v1/auth/", s.logger))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
