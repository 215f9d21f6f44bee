package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict is returned when a conditional session update loses
// the race to a concurrent writer.
var ErrVersionConflict = errors.New("session was modified concurrently")

// EnsureIndexes creates the indexes the repositories rely on: unique
// room codes, idempotent roster membership, one leaderboard row per
// (user, genre), one progress row per (user, genre), unique emails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll string
		keys bson.D
	}{
		{"game_rooms", bson.D{{Key: "room_code", Value: 1}}},
		{"room_players", bson.D{{Key: "room_id", Value: 1}, {Key: "user_id", Value: 1}}},
		{"leaderboard", bson.D{{Key: "user_id", Value: 1}, {Key: "genre", Value: 1}}},
		{"player_progress", bson.D{{Key: "user_id", Value: 1}, {Key: "genre", Value: 1}}},
		{"users", bson.D{{Key: "email", Value: 1}}},
	}

	for _, idx := range indexes {
		_, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: unique,
		})
		if err != nil {
			return err
		}
	}

	_, err := db.Collection("chat_messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "sent_at", Value: 1}},
	})
	return err
}
