package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"taskease/internal/config"
)

const (
	tasksCollection       = "teams"
	usersCollection       = "users"
	taskUpdatesCollection = "taskupdates"
	chatCollection        = "worldchatmessages"
	summariesCollection   = "summarystatuses"
	userDetailsCollection = "userdetails"

	connectTimeout = 10 * time.Second
)

func Connect(ctx context.Context, conf *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.MongoURI))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(conf.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the repositories rely on, including the
// uniqueness guarantees for emails, successors and daily summaries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		tasksCollection: {
			{
				Keys: bson.D{{Key: "sourceTaskId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"sourceTaskId": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "dueDate", Value: 1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
			{Keys: bson.D{{Key: "taskFrequency", Value: 1}}},
		},
		taskUpdatesCollection: {
			{Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		chatCollection: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
		summariesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		userDetailsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
		zap.L().Debug("indexes ensured", zap.String("collection", collection), zap.Strings("indexes", names))
	}
	return nil
}

type Health struct {
	client *mongo.Client
}

func NewHealth(client *mongo.Client) *Health {
	return &Health{client: client}
}

func (h *Health) Name() string {
	return "mongodb"
}

func (h *Health) Ping(ctx context.Context) error {
	if h.client == nil {
		return fmt.Errorf("mongodb is not configured")
	}
	return h.client.Ping(ctx, readpref.Primary())
}
