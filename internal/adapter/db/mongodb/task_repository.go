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

type taskDocument struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	CreatedBy       string              `bson:"createdBy"`
	TaskName        string              `bson:"taskName"`
	TaskDescription string              `bson:"taskDescription"`
	AssignedTo      string              `bson:"assignedTo"`
	AssignedName    string              `bson:"assignedName"`
	TaskFrequency   string              `bson:"taskFrequency"`
	DueDate         time.Time           `bson:"dueDate"`
	Priority        string              `bson:"priority"`
	CompletedDate   *time.Time          `bson:"completedDate,omitempty"`
	SourceTaskID    *primitive.ObjectID `bson:"sourceTaskId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt"`
}

type TaskRepository struct {
	collection *mongo.Collection
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	doc, err := toTaskDocument(task)
	if err != nil {
		return domain.Task{}, err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if doc.SourceTaskID != nil && mongo.IsDuplicateKeyError(err) {
			return domain.Task{}, domain.ErrSuccessorExists
		}
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	task.ID = doc.ID.Hex()
	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, email string) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"assignedTo": email})
}

func (r *TaskRepository) ListByCreator(ctx context.Context, email string) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"createdBy": email})
}

func (r *TaskRepository) ListRecurring(ctx context.Context) ([]domain.Task, error) {
	frequencies := make(bson.A, 0, len(domain.RecurringFrequencies))
	for _, f := range domain.RecurringFrequencies {
		frequencies = append(frequencies, string(f))
	}
	return r.find(ctx, bson.M{"taskFrequency": bson.M{"$in": frequencies}})
}

func (r *TaskRepository) ListDueBetween(ctx context.Context, email string, from, to time.Time) ([]domain.Task, error) {
	return r.find(ctx, bson.M{
		"assignedTo": email,
		"dueDate":    bson.M{"$gte": from, "$lt": to},
	})
}

func (r *TaskRepository) ListOverdue(ctx context.Context, email string, before time.Time) ([]domain.Task, error) {
	return r.find(ctx, bson.M{
		"assignedTo":    email,
		"completedDate": nil,
		"dueDate":       bson.M{"$lt": before},
	})
}

func (r *TaskRepository) CompletePending(ctx context.Context, id, assignee string, at time.Time) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	var doc taskDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "assignedTo": assignee, "completedDate": nil},
		bson.M{"$set": bson.M{"completedDate": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("complete task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindSuccessor(ctx context.Context, sourceID string) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(sourceID)
	if err != nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.findOne(ctx, bson.M{"sourceTaskId": oid})
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) findOne(ctx context.Context, filter bson.M) (domain.Task, error) {
	var doc taskDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func toTaskDocument(task domain.Task) (taskDocument, error) {
	doc := taskDocument{
		CreatedBy:       task.CreatedBy,
		TaskName:        task.TaskName,
		TaskDescription: task.TaskDescription,
		AssignedTo:      task.AssignedTo,
		AssignedName:    task.AssignedName,
		TaskFrequency:   string(task.TaskFrequency),
		DueDate:         task.DueDate,
		Priority:        task.Priority,
		CompletedDate:   task.CompletedDate,
		CreatedAt:       task.CreatedAt,
	}

	if task.SourceTaskID != nil {
		oid, err := primitive.ObjectIDFromHex(*task.SourceTaskID)
		if err != nil {
			return taskDocument{}, fmt.Errorf("source task id %q: %w", *task.SourceTaskID, err)
		}
		doc.SourceTaskID = &oid
	}

	return doc, nil
}

func (d taskDocument) toDomain() domain.Task {
	task := domain.Task{
		ID:              d.ID.Hex(),
		CreatedBy:       d.CreatedBy,
		TaskName:        d.TaskName,
		TaskDescription: d.TaskDescription,
		AssignedTo:      d.AssignedTo,
		AssignedName:    d.AssignedName,
		TaskFrequency:   domain.Frequency(d.TaskFrequency),
		DueDate:         d.DueDate,
		Priority:        d.Priority,
		CompletedDate:   d.CompletedDate,
		CreatedAt:       d.CreatedAt,
	}

	if d.SourceTaskID != nil {
		value := d.SourceTaskID.Hex()
		task.SourceTaskID = &value
	}

	return task
}
