package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IncidentStatus tracks the review workflow of a reported incident
type IncidentStatus string

const (
	IncidentStatusOpen      IncidentStatus = "open"
	IncidentStatusInReview  IncidentStatus = "in_review"
	IncidentStatusResolved  IncidentStatus = "resolved"
	IncidentStatusDismissed IncidentStatus = "dismissed"
)

// Incident is a reported cyber-incident together with the engine's
// automated analysis and the analyst review trail.
type Incident struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Submission fields
	Platform      string `json:"platform" bson:"platform"`
	IncidentDate  string `json:"incident_date" bson:"incident_date"`
	Relationship  string `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Narrative     string `json:"narrative" bson:"narrative"`
	IOCIndicators string `json:"ioc_indicators" bson:"ioc_indicators"`

	// Reporter info
	ReportedBy string    `json:"reported_by" bson:"reported_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`

	// Automated analysis
	RiskScore           int                  `json:"risk_score" bson:"risk_score"`
	RiskLevel           RiskLevel            `json:"risk_level" bson:"risk_level"`
	RiskReasons         []string             `json:"risk_reasons" bson:"risk_reasons"`
	Flagged             bool                 `json:"flagged" bson:"flagged"`
	ThreatTypeSuggested ThreatType           `json:"threat_type_suggested" bson:"threat_type_suggested"`
	ThreatConfidence    float64              `json:"threat_confidence" bson:"threat_confidence"`
	ImmediateActions    []string             `json:"immediate_actions" bson:"immediate_actions"`
	PreventiveAdvice    []string             `json:"preventive_advice" bson:"preventive_advice"`

	// Evidence integrity, computed once at creation and never rewritten
	EvidenceDigest EvidenceDigest `json:"evidence_digest" bson:"evidence_digest"`

	// OCR data
	OCRExtractedText string `json:"ocr_extracted_text,omitempty" bson:"ocr_extracted_text,omitempty"`

	// Workflow
	Status          IncidentStatus `json:"status" bson:"status"`
	AnalystReviewed bool           `json:"analyst_reviewed" bson:"analyst_reviewed"`

	// Analyst review fields
	AnalystName     string     `json:"analyst_name,omitempty" bson:"analyst_name,omitempty"`
	ThreatType      ThreatType `json:"threat_type,omitempty" bson:"threat_type,omitempty"`
	AnalystNotes    string     `json:"analyst_notes,omitempty" bson:"analyst_notes,omitempty"`
	FinalVerdict    string     `json:"final_verdict,omitempty" bson:"final_verdict,omitempty"`
	ResponseActions []string   `json:"response_actions,omitempty" bson:"response_actions,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`

	// History
	History []HistoryEntry `json:"history" bson:"history"`
}

// HistoryEntry records one workflow action on an incident
type HistoryEntry struct {
	Action string    `json:"action" bson:"action"`
	By     string    `json:"by" bson:"by"`
	Time   time.Time `json:"time" bson:"time"`
}
