package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType identifies the kind of action being audited
type AuditEventType string

const (
	AuditIncidentReported AuditEventType = "incident_reported"
	AuditIncidentReviewed AuditEventType = "incident_reviewed"
	AuditIncidentDeleted  AuditEventType = "incident_deleted"
	AuditStatusChanged    AuditEventType = "status_changed"
	AuditUserLogin        AuditEventType = "user_login"
	AuditUserRegistered   AuditEventType = "user_registered"
)

// AuditEvent is one append-only audit log record
type AuditEvent struct {
	ID        uuid.UUID      `json:"id" bson:"id"`
	Actor     string         `json:"actor" bson:"actor"`
	EventType AuditEventType `json:"event_type" bson:"event_type"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}
