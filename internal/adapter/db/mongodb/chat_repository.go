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

type chatDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    *string            `bson:"userId,omitempty"`
	Username  string             `bson:"username"`
	Message   string             `bson:"message"`
	IsSystem  bool               `bson:"isSystem"`
	Timestamp time.Time          `bson:"timestamp"`
}

type ChatRepository struct {
	collection *mongo.Collection
}

var _ ports.ChatRepository = (*ChatRepository)(nil)

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{collection: db.Collection(chatCollection)}
}

func (r *ChatRepository) Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	doc := chatDocument{
		ID:        primitive.NewObjectID(),
		UserID:    msg.UserID,
		Username:  msg.Username,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		Timestamp: msg.Timestamp,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}

	msg.ID = doc.ID.Hex()
	return msg, nil
}

func (r *ChatRepository) ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"timestamp": bson.M{"$lt": before}},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []chatDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, len(docs))
	for i, doc := range docs {
		// newest first from the cursor
		messages[len(docs)-1-i] = domain.ChatMessage{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			Username:  doc.Username,
			Message:   doc.Message,
			IsSystem:  doc.IsSystem,
			Timestamp: doc.Timestamp,
		}
	}
	return messages, nil
}
