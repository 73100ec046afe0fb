package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/pkg/logger"
)

// MongoDB wraps the mongo client and the application database handle
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// NewMongo creates a new MongoDB connection
func NewMongo(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*MongoDB, error) {
	log = log.WithComponent("mongo")
	log.Info().Str("database", cfg.Database).Msg("connecting to MongoDB")

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Msg("connected to MongoDB successfully")

	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   log,
	}, nil
}

// Database returns the application database handle
func (db *MongoDB) Database() *mongo.Database {
	return db.database
}

// Collection returns a collection handle by name
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Ping verifies the connection is alive
func (db *MongoDB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (db *MongoDB) Close(ctx context.Context) error {
	db.logger.Info().Msg("closing MongoDB connection")
	return db.client.Disconnect(ctx)
}
