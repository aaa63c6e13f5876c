package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type userDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	Username        string             `bson:"username"`
	TasksAssigned   int                `bson:"tasksAssigned"`
	TasksCompleted  int                `bson:"tasksCompleted"`
	TasksInProgress int                `bson:"tasksInProgress"`
	TasksNotStarted int                `bson:"tasksNotStarted"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

type UserRepository struct {
	collection *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	doc := userDocument{
		ID:              primitive.NewObjectID(),
		Email:           domain.NormalizeEmail(user.Email),
		Username:        user.Username,
		TasksAssigned:   user.Counters.TasksAssigned,
		TasksCompleted:  user.Counters.TasksCompleted,
		TasksInProgress: user.Counters.TasksInProgress,
		TasksNotStarted: user.Counters.TasksNotStarted,
		CreatedAt:       user.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (r *UserRepository) ListEmails(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"email": 1}).
			SetSort(bson.D{{Key: "email", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	emails := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			Email string `bson:"email"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		emails = append(emails, doc.Email)
	}
	return emails, cursor.Err()
}

// AdjustCounters uses an update pipeline so every counter is clamped at zero
// in one atomic write.
func (r *UserRepository) AdjustCounters(ctx context.Context, email string, delta domain.CounterDelta) error {
	set := bson.M{}
	for field, change := range map[string]int{
		"tasksAssigned":   delta.Assigned,
		"tasksCompleted":  delta.Completed,
		"tasksInProgress": delta.InProgress,
		"tasksNotStarted": delta.NotStarted,
	} {
		if change == 0 {
			continue
		}
		set[field] = bson.M{"$max": bson.A{
			bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$" + field, 0}}, change}},
			0,
		}}
	}

	filter := bson.M{"email": domain.NormalizeEmail(email)}
	if len(set) == 0 {
		count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	}

	res, err := r.collection.UpdateOne(ctx, filter, mongo.Pipeline{{{Key: "$set", Value: set}}})
	if err != nil {
		return fmt.Errorf("adjust counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return doc.toDomain(), nil
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Username: d.Username,
		Counters: domain.TaskCounters{
			TasksAssigned:   d.TasksAssigned,
			TasksCompleted:  d.TasksCompleted,
			TasksInProgress: d.TasksInProgress,
			TasksNotStarted: d.TasksNotStarted,
		},
		CreatedAt: d.CreatedAt,
	}
}
