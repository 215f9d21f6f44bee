package repository

import (
	"context"
	"time"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepo interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, roomID string) (*model.Session, error)
	// UpdateVersioned replaces the session only if the stored version
	// still matches the version the caller read. A lost race returns
	// ErrVersionConflict, making each turn transition atomic.
	UpdateVersioned(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, roomID string) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{collection: db.Collection("game_state")}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	s.Version = 1
	s.UpdatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *sessionRepo) Get(ctx context.Context, roomID string) (*model.Session, error) {
	var s model.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": roomID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) UpdateVersioned(ctx context.Context, s *model.Session) error {
	readVersion := s.Version
	s.Version = readVersion + 1
	s.UpdatedAt = time.Now().UTC()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.RoomID, "version": readVersion}, s)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, roomID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": roomID})
	return err
}
