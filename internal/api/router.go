package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"cyberguard-lab/internal/api/handlers"
	apimiddleware "cyberguard-lab/internal/api/middleware"
	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/services"
	"cyberguard-lab/internal/infrastructure/cache"
	"cyberguard-lab/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	auth     *services.AuthService
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, auth *services.AuthService, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		auth:     auth,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)

		pub.Post("/api/v1/auth/register", r.handlers.Auth.Register)
		pub.Post("/api/v1/auth/login", r.handlers.Auth.Login)
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.JWTAuth(r.auth))

		// Incident reporting and retrieval
		api.Route("/incidents", func(incidents chi.Router) {
			incidents.Post("/", r.handlers.Incidents.Report)
			incidents.Get("/", r.handlers.Incidents.List)
			incidents.Get("/{id}", r.handlers.Incidents.Get)
			incidents.Get("/{id}/analysis", r.handlers.Incidents.Analysis)
			incidents.Get("/{id}/integrity", r.handlers.Incidents.VerifyIntegrity)
		})

		// Analyst and admin endpoints
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(apimiddleware.StaffOnly())

			admin.Get("/incidents", r.handlers.Admin.List)
			admin.Post("/incidents/{id}/review", r.handlers.Admin.Review)
			admin.Patch("/incidents/{id}/status", r.handlers.Admin.UpdateStatus)
			admin.Delete("/incidents/{id}", r.handlers.Admin.Delete)

			admin.Get("/stats", r.handlers.Admin.Stats)
			admin.Get("/audit/{actor}", r.handlers.Admin.AuditTrail)
		})
	})

	return router
}
