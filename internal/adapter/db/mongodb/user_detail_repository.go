package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type userDetailDocument struct {
	UserID      string    `bson:"userId"`
	PhoneNumber *string   `bson:"phoneNumber"`
	Role        string    `bson:"role"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type UserDetailRepository struct {
	collection *mongo.Collection
}

var _ ports.UserDetailRepository = (*UserDetailRepository)(nil)

func NewUserDetailRepository(db *mongo.Database) *UserDetailRepository {
	return &UserDetailRepository{collection: db.Collection(userDetailsCollection)}
}

func (r *UserDetailRepository) Get(ctx context.Context, userID string) (domain.UserDetail, error) {
	var doc userDetailDocument
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.UserDetail{}, domain.ErrUserDetailNotFound
		}
		return domain.UserDetail{}, err
	}

	return domain.UserDetail{
		UserID:      doc.UserID,
		PhoneNumber: doc.PhoneNumber,
		Role:        domain.Role(doc.Role),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (r *UserDetailRepository) Upsert(ctx context.Context, detail domain.UserDetail) (domain.UserDetail, error) {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": detail.UserID},
		bson.M{
			"$set": bson.M{
				"phoneNumber": detail.PhoneNumber,
				"role":        string(detail.Role),
				"updatedAt":   detail.UpdatedAt,
			},
			"$setOnInsert": bson.M{"createdAt": detail.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return domain.UserDetail{}, fmt.Errorf("upsert user detail: %w", err)
	}
	return r.Get(ctx, detail.UserID)
}
