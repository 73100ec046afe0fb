package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/internal/infrastructure/database/repository"
	"cyberguard-lab/pkg/logger"
)

// AuditService records who did what. A failed write is logged and
// swallowed so an audit outage never blocks the action being audited.
type AuditService struct {
	repo   *repository.AuditRepository
	logger *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo *repository.AuditRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: log.WithComponent("audit"),
	}
}

// Record appends one audit event
func (s *AuditService) Record(ctx context.Context, actor string, eventType models.AuditEventType, details map[string]any) {
	event := &models.AuditEvent{
		ID:        uuid.New(),
		Actor:     actor,
		EventType: eventType,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Str("actor", actor).
			Str("event_type", string(eventType)).
			Msg("failed to record audit event")
	}
}

// History returns the most recent events for an actor
func (s *AuditService) History(ctx context.Context, actor string, limit int64) ([]models.AuditEvent, error) {
	return s.repo.ListByActor(ctx, actor, limit)
}
