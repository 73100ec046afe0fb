package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cyberguard-lab/internal/domain/models"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("repository: not found")

// IncidentFilter defines filtering options for listing incidents
type IncidentFilter struct {
	ReportedBy string
	Status     models.IncidentStatus
	RiskLevel  models.RiskLevel
	Flagged    *bool
	Limit      int64
	Offset     int64
}

// IncidentRepository handles incident persistence in MongoDB
type IncidentRepository struct {
	coll *mongo.Collection
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *mongo.Database) *IncidentRepository {
	return &IncidentRepository{
		coll: db.Collection("incidents"),
	}
}

// Create inserts a new incident and returns it with its assigned ID
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) (*models.Incident, error) {
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now().UTC()
	}

	res, err := r.coll.InsertOne(ctx, incident)
	if err != nil {
		return nil, fmt.Errorf("failed to insert incident: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		incident.ID = oid
	}

	return incident, nil
}

// GetByID fetches a single incident by its ObjectID hex string
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	// A malformed id names no document
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var incident models.Incident
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&incident)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incident: %w", err)
	}

	return &incident, nil
}

// List returns incidents matching the filter, newest first
func (r *IncidentRepository) List(ctx context.Context, filter IncidentFilter) ([]models.Incident, error) {
	query := bson.M{}
	if filter.ReportedBy != "" {
		query["reported_by"] = filter.ReportedBy
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.RiskLevel != "" {
		query["risk_level"] = filter.RiskLevel
	}
	if filter.Flagged != nil {
		query["flagged"] = *filter.Flagged
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts.SetSkip(filter.Offset)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer cursor.Close(ctx)

	var incidents []models.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		return nil, fmt.Errorf("failed to decode incidents: %w", err)
	}

	return incidents, nil
}

// UpdateStatus sets the workflow status and appends a history entry
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus, actor string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{"status": status},
		"$push": bson.M{"history": models.HistoryEntry{
			Action: fmt.Sprintf("Status changed to %s", status),
			By:     actor,
			Time:   time.Now().UTC(),
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update incident status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Review records an analyst review. The stored evidence digest is never
// touched by review updates; it stays exactly as computed at creation.
type Review struct {
	AnalystName     string
	ThreatType      models.ThreatType
	AnalystNotes    string
	FinalVerdict    string
	ResponseActions []string
}

// ApplyReview marks the incident as reviewed with the analyst's findings
func (r *IncidentRepository) ApplyReview(ctx context.Context, id string, review Review) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"analyst_reviewed": true,
			"analyst_name":     review.AnalystName,
			"threat_type":      review.ThreatType,
			"analyst_notes":    review.AnalystNotes,
			"final_verdict":    review.FinalVerdict,
			"response_actions": review.ResponseActions,
			"reviewed_at":      now,
			"status":           models.IncidentStatusResolved,
		},
		"$push": bson.M{"history": models.HistoryEntry{
			Action: "Incident reviewed",
			By:     review.AnalystName,
			Time:   now,
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to apply review: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an incident
func (r *IncidentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// CountByRiskLevel returns incident counts grouped by risk level
func (r *IncidentRepository) CountByRiskLevel(ctx context.Context) (map[models.RiskLevel]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$risk_level", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate incidents: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.RiskLevel]int64)
	for cursor.Next(ctx) {
		var row struct {
			Level models.RiskLevel `bson:"_id"`
			Count int64            `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode aggregate row: %w", err)
		}
		counts[row.Level] = row.Count
	}

	return counts, cursor.Err()
}
