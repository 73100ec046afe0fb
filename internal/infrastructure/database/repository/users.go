package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cyberguard-lab/internal/domain/models"
)

// ErrDuplicateEmail is returned when registering an email that already exists
var ErrDuplicateEmail = errors.New("repository: email already registered")

// UserRepository handles user persistence in MongoDB
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	existing := r.coll.FindOne(ctx, bson.M{"email": user.Email})
	if existing.Err() == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing user: %w", existing.Err())
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

// GetByEmail fetches a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// TouchLogin records the last successful login time
func (r *UserRepository) TouchLogin(ctx context.Context, email string) error {
	now := time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"last_login_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
