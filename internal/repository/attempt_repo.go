package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"promptquest/internal/model"
)

// AttemptRepo is the insert-only audit trail of scored submissions
type AttemptRepo interface {
	Create(ctx context.Context, attempt *model.AttemptLog) error
}

type attemptRepo struct {
	collection *mongo.Collection
}

func NewAttemptRepo(db *mongo.Database) AttemptRepo {
	return &attemptRepo{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepo) Create(ctx context.Context, attempt *model.AttemptLog) error {
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid.Hex()
	}
	return nil
}
