package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"promptquest/internal/model"
)

// LevelRepo handles MongoDB operations for levels
type LevelRepo interface {
	EnsureIndexes(ctx context.Context) error
	Upsert(ctx context.Context, level *model.Level) error
	List(ctx context.Context) ([]model.Level, error)
}

type levelRepo struct {
	levels *mongo.Collection
}

// NewLevelRepo creates a new level repository
func NewLevelRepo(db *mongo.Database) LevelRepo {
	return &levelRepo{
		levels: db.Collection("levels"),
	}
}

func (r *levelRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.levels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *levelRepo) Upsert(ctx context.Context, level *model.Level) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.levels.ReplaceOne(ctx, bson.M{"number": level.Number}, level, opts)
	return err
}

// List returns all levels ordered by number
func (r *levelRepo) List(ctx context.Context) ([]model.Level, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.levels.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var levels []model.Level
	if err := cursor.All(ctx, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}
