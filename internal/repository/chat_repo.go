package repository

import (
	"context"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepo interface {
	Insert(ctx context.Context, msg *model.ChatMessage) error
	// ListByRoom returns messages oldest first.
	ListByRoom(ctx context.Context, roomID string) ([]model.ChatMessage, error)
	RemoveAll(ctx context.Context, roomID string) error
}

type chatRepo struct {
	collection *mongo.Collection
}

func NewChatRepo(db *mongo.Database) ChatRepo {
	return &chatRepo{collection: db.Collection("chat_messages")}
}

func (r *chatRepo) Insert(ctx context.Context, msg *model.ChatMessage) error {
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

func (r *chatRepo) ListByRoom(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}})
	cur, err := r.collection.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []model.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *chatRepo) RemoveAll(ctx context.Context, roomID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"room_id": roomID})
	return err
}
