package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskease/internal/core/ports"
)

type SummaryStatusRepository struct {
	collection *mongo.Collection
}

var _ ports.SummaryStatusRepository = (*SummaryStatusRepository)(nil)

func NewSummaryStatusRepository(db *mongo.Database) *SummaryStatusRepository {
	return &SummaryStatusRepository{collection: db.Collection(summariesCollection)}
}

func (r *SummaryStatusRepository) HasSent(ctx context.Context, email, day string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx,
		bson.M{"email": email, "date": day},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SummaryStatusRepository) MarkSent(ctx context.Context, email, day string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email, "date": day},
		bson.M{"$setOnInsert": bson.M{"emailSent": true, "sentAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mark summary sent: %w", err)
	}
	return nil
}
