package repository

import (
	"context"
	"time"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeaderboardRepo interface {
	// Incr adds delta to a user's total for a genre, creating the row
	// if needed.
	Incr(ctx context.Context, userID, genre string, delta int) (*model.Score, error)
	// Set overwrites a user's total for a genre (admin path).
	Set(ctx context.Context, userID, genre string, score int) error
	Get(ctx context.Context, userID, genre string) (*model.Score, error)
	// Page returns rows sorted by total_score descending with stable
	// insertion order on ties.
	Page(ctx context.Context, offset, limit int64) ([]model.Score, error)
	Count(ctx context.Context) (int64, error)
	ResetUser(ctx context.Context, userID string) error
	ResetAll(ctx context.Context) error
}

type leaderboardRepo struct {
	collection *mongo.Collection
}

func NewLeaderboardRepo(db *mongo.Database) LeaderboardRepo {
	return &leaderboardRepo{collection: db.Collection("leaderboard")}
}

func (r *leaderboardRepo) Incr(ctx context.Context, userID, genre string, delta int) (*model.Score, error) {
	filter := bson.M{"user_id": userID, "genre": genre}
	update := bson.M{
		"$inc": bson.M{"total_score": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var score model.Score
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&score); err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *leaderboardRepo) Set(ctx context.Context, userID, genre string, score int) error {
	filter := bson.M{"user_id": userID, "genre": genre}
	update := bson.M{
		"$set": bson.M{"total_score": score, "updated_at": time.Now().UTC()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *leaderboardRepo) Get(ctx context.Context, userID, genre string) (*model.Score, error) {
	var score model.Score
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "genre": genre}).Decode(&score)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}

func (r *leaderboardRepo) Page(ctx context.Context, offset, limit int64) ([]model.Score, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "total_score", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var scores []model.Score
	if err := cur.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *leaderboardRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *leaderboardRepo) ResetUser(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"total_score": 0, "updated_at": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, bson.M{"user_id": userID}, update)
	return err
}

func (r *leaderboardRepo) ResetAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
