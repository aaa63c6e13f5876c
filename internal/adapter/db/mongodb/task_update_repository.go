package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type taskUpdateDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TaskID     string             `bson:"taskId"`
	UpdateText string             `bson:"updateText"`
	UpdatedBy  string             `bson:"updatedBy"`
	UpdateType string             `bson:"updateType"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type TaskUpdateRepository struct {
	collection *mongo.Collection
}

var _ ports.TaskUpdateRepository = (*TaskUpdateRepository)(nil)

func NewTaskUpdateRepository(db *mongo.Database) *TaskUpdateRepository {
	return &TaskUpdateRepository{collection: db.Collection(taskUpdatesCollection)}
}

func (r *TaskUpdateRepository) Create(ctx context.Context, update domain.TaskUpdate) (domain.TaskUpdate, error) {
	doc := taskUpdateDocument{
		ID:         primitive.NewObjectID(),
		TaskID:     update.TaskID,
		UpdateText: update.UpdateText,
		UpdatedBy:  update.UpdatedBy,
		UpdateType: string(update.UpdateType),
		CreatedAt:  update.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.TaskUpdate{}, fmt.Errorf("insert task update: %w", err)
	}

	update.ID = doc.ID.Hex()
	return update, nil
}

func (r *TaskUpdateRepository) ListByTask(ctx context.Context, taskID string) ([]domain.TaskUpdate, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"taskId": taskID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskUpdateDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	updates := make([]domain.TaskUpdate, 0, len(docs))
	for _, doc := range docs {
		updates = append(updates, domain.TaskUpdate{
			ID:         doc.ID.Hex(),
			TaskID:     doc.TaskID,
			UpdateText: doc.UpdateText,
			UpdatedBy:  doc.UpdatedBy,
			UpdateType: domain.UpdateType(doc.UpdateType),
			CreatedAt:  doc.CreatedAt,
		})
	}
	return updates, nil
}
