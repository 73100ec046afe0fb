package services

import (
	"context"
	"fmt"
	"time"

	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/internal/infrastructure/database/repository"
	"cyberguard-lab/pkg/logger"
)

// flagThreshold marks incidents whose score demands analyst attention
const flagThreshold = 61

// IncidentSubmission carries the fields a reporter submits
type IncidentSubmission struct {
	Platform      string `json:"platform"`
	IncidentDate  string `json:"incident_date"`
	Relationship  string `json:"relationship"`
	Narrative     string `json:"narrative"`
	IOCIndicators string `json:"ioc_indicators"`
}

// Validate checks required submission fields
func (s IncidentSubmission) Validate() error {
	if s.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	if s.Narrative == "" {
		return fmt.Errorf("narrative is required")
	}
	return nil
}

// IncidentService runs the full analysis pipeline on submitted
// incidents and manages their review lifecycle.
type IncidentService struct {
	repo       *repository.IncidentRepository
	engine     *RiskEngine
	classifier *ClassifierService
	audit      *AuditService
	logger     *logger.Logger
}

// NewIncidentService creates a new incident service
func NewIncidentService(
	repo *repository.IncidentRepository,
	engine *RiskEngine,
	classifier *ClassifierService,
	audit *AuditService,
	log *logger.Logger,
) *IncidentService {
	return &IncidentService{
		repo:       repo,
		engine:     engine,
		classifier: classifier,
		audit:      audit,
		logger:     log.WithComponent("incident-service"),
	}
}

// Report analyzes a submission and persists the resulting incident.
// ocrText is text already extracted from any uploaded evidence images;
// it feeds the risk analysis but is stored separately from the
// narrative.
func (s *IncidentService) Report(ctx context.Context, reportedBy string, sub IncidentSubmission, ocrText string) (*models.Incident, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	assessment := s.engine.Assess(ctx, sub.Narrative, sub.IOCIndicators, ocrText)

	analysisText := NormalizeText(sub.Narrative, sub.IOCIndicators, ocrText)
	urgency := UrgencyScore(sub.Narrative)
	classification := s.classifier.Classify(analysisText.Raw, assessment.MaliciousURLFound, urgency)

	guidance := models.Guidance(classification.Type)
	digest := ComputeEvidenceDigest(BuildEvidenceString(sub.Platform, sub.IncidentDate, sub.Narrative, sub.IOCIndicators))

	now := time.Now().UTC()
	incident := &models.Incident{
		Platform:      sub.Platform,
		IncidentDate:  sub.IncidentDate,
		Relationship:  sub.Relationship,
		Narrative:     sub.Narrative,
		IOCIndicators: sub.IOCIndicators,
		ReportedBy:    reportedBy,
		CreatedAt:     now,

		RiskScore:           assessment.Score,
		RiskLevel:           assessment.Level,
		RiskReasons:         assessment.Reasons,
		Flagged:             assessment.Score >= flagThreshold,
		ThreatTypeSuggested: classification.Type,
		ThreatConfidence:    classification.Confidence,
		ImmediateActions:    guidance.Immediate,
		PreventiveAdvice:    guidance.Preventive,

		EvidenceDigest:   digest,
		OCRExtractedText: ocrText,

		Status: models.IncidentStatusOpen,
		History: []models.HistoryEntry{{
			Action: "Incident reported",
			By:     reportedBy,
			Time:   now,
		}},
	}

	created, err := s.repo.Create(ctx, incident)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("incident_id", created.ID.Hex()).
		Int("risk_score", created.RiskScore).
		Str("risk_level", string(created.RiskLevel)).
		Str("threat_type", string(created.ThreatTypeSuggested)).
		Bool("flagged", created.Flagged).
		Msg("incident reported")

	s.audit.Record(ctx, reportedBy, models.AuditIncidentReported, map[string]any{
		"incident_id": created.ID.Hex(),
		"risk_level":  string(created.RiskLevel),
	})

	return created, nil
}

// Get fetches one incident by id
func (s *IncidentService) Get(ctx context.Context, id string) (*models.Incident, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns incidents matching the filter
func (s *IncidentService) List(ctx context.Context, filter repository.IncidentFilter) ([]models.Incident, error) {
	return s.repo.List(ctx, filter)
}

// VerifyIntegrity recomputes the incident's evidence digest and
// reports whether the stored fields still match it
func (s *IncidentService) VerifyIntegrity(ctx context.Context, id string) (*models.IntegrityReport, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := VerifyEvidenceDigest(
		incident.Platform,
		incident.IncidentDate,
		incident.Narrative,
		incident.IOCIndicators,
		incident.EvidenceDigest,
	)

	if report.Overall == models.IntegrityTampered {
		s.logger.Warn().Str("incident_id", id).Msg("evidence integrity check failed")
	}

	return &report, nil
}

// Review records an analyst's verdict on an incident
func (s *IncidentService) Review(ctx context.Context, id string, review repository.Review) error {
	if !review.ThreatType.Valid() {
		return fmt.Errorf("unknown threat type %q", review.ThreatType)
	}

	if err := s.repo.ApplyReview(ctx, id, review); err != nil {
		return err
	}

	s.audit.Record(ctx, review.AnalystName, models.AuditIncidentReviewed, map[string]any{
		"incident_id": id,
		"threat_type": string(review.ThreatType),
		"verdict":     review.FinalVerdict,
	})
	return nil
}

// UpdateStatus moves an incident through the review workflow
func (s *IncidentService) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus, actor string) error {
	switch status {
	case models.IncidentStatusOpen, models.IncidentStatusInReview,
		models.IncidentStatusResolved, models.IncidentStatusDismissed:
	default:
		return fmt.Errorf("unknown status %q", status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status, actor); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditStatusChanged, map[string]any{
		"incident_id": id,
		"status":      string(status),
	})
	return nil
}

// Delete removes an incident permanently
func (s *IncidentService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditIncidentDeleted, map[string]any{
		"incident_id": id,
	})
	return nil
}

// Stats returns incident counts grouped by risk level
func (s *IncidentService) Stats(ctx context.Context) (map[models.RiskLevel]int64, error) {
	return s.repo.CountByRiskLevel(ctx)
}
