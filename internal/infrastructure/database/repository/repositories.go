package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	Incidents *IncidentRepository
	Users     *UserRepository
	Audit     *AuditRepository
}

// NewRepositories creates all repositories against one database handle
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Incidents: NewIncidentRepository(db),
		Users:     NewUserRepository(db),
		Audit:     NewAuditRepository(db),
	}
}
