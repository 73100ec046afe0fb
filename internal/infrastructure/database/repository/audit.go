package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cyberguard-lab/internal/domain/models"
)

// AuditRepository handles append-only audit log persistence
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{
		coll: db.Collection("audit_log"),
	}
}

// Append inserts an audit event. Events are never updated or deleted.
func (r *AuditRepository) Append(ctx context.Context, event *models.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}

// ListByActor returns the most recent audit events for an actor
func (r *AuditRepository) ListByActor(ctx context.Context, actor string, limit int64) ([]models.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"actor": actor}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode audit events: %w", err)
	}

	return events, nil
}
