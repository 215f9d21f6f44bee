package repository

import (
	"context"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepo interface {
	Get(ctx context.Context, userID, genre string) (*model.Progress, error)
	// Advance raises completed_levels to level, but never lowers it.
	// $max keeps the gate monotonic even under concurrent submissions.
	Advance(ctx context.Context, userID, genre string, level int) error
}

type progressRepo struct {
	collection *mongo.Collection
}

func NewProgressRepo(db *mongo.Database) ProgressRepo {
	return &progressRepo{collection: db.Collection("player_progress")}
}

func (r *progressRepo) Get(ctx context.Context, userID, genre string) (*model.Progress, error) {
	var p model.Progress
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "genre": genre}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *progressRepo) Advance(ctx context.Context, userID, genre string, level int) error {
	filter := bson.M{"user_id": userID, "genre": genre}
	update := bson.M{"$max": bson.M{"completed_levels": level}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
