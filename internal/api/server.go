// Package api provides the HTTP API server and handlers.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/beadfanatic/server/internal/auth"
	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/ratelimit"
	"github.com/beadfanatic/server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg             *config.Config
	identifyService *service.IdentifyService
	contentService  *service.ContentService
	tokens          *auth.TokenService
	router          *chi.Mux
	api             huma.API
	identifyLimiter *ratelimit.KeyedRateLimiter
	logger          *slog.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(cfg *config.Config, identifyService *service.IdentifyService, contentService *service.ContentService, tokens *auth.TokenService, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.SiteOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("BeadFanatic API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		cfg:             cfg,
		identifyService: identifyService,
		contentService:  contentService,
		tokens:          tokens,
		router:          router,
		api:             humaAPI,
		identifyLimiter: ratelimit.New(cfg.Server.IdentifyRPS, cfg.Server.IdentifyBurst),
		logger:          logger,
	}

	s.registerHealthRoutes()
	s.registerContentRoutes()
	s.registerSearchRoutes()
	s.registerAdminRoutes()
	s.registerIdentifyRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.identifyLimiter.Stop()
}
