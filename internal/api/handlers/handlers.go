package handlers

import (
	"cyberguard-lab/internal/domain/services"
	"cyberguard-lab/internal/infrastructure/cache"
	"cyberguard-lab/internal/infrastructure/database"
	"cyberguard-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Incidents *IncidentsHandler
	Admin     *AdminHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Auth      *services.AuthService
	Incidents *services.IncidentService
	Audit     *services.AuditService
	Extractor services.TextExtractor
	Cache     *cache.RedisCache
	Mongo     *database.MongoDB
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Cache, deps.Mongo, deps.Logger),
		Auth:      NewAuthHandler(deps.Auth, deps.Logger),
		Incidents: NewIncidentsHandler(deps.Incidents, deps.Extractor, deps.Logger),
		Admin:     NewAdminHandler(deps.Incidents, deps.Audit, deps.Logger),
	}
}
