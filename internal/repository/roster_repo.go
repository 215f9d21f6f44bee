package repository

import (
	"context"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RosterRepo interface {
	// Insert adds a membership. A duplicate (room_id, user_id) insert
	// returns the existing row instead of erroring, so join is
	// idempotent at the storage layer.
	Insert(ctx context.Context, m *model.Membership) (*model.Membership, error)
	Get(ctx context.Context, roomID, userID string) (*model.Membership, error)
	// List returns memberships in join order, which is the turn
	// rotation order.
	List(ctx context.Context, roomID string) ([]model.Membership, error)
	RemoveAll(ctx context.Context, roomID string) error
}

type rosterRepo struct {
	collection *mongo.Collection
}

func NewRosterRepo(db *mongo.Database) RosterRepo {
	return &rosterRepo{collection: db.Collection("room_players")}
}

func (r *rosterRepo) Insert(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	_, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.Get(ctx, m.RoomID, m.UserID)
		}
		return nil, err
	}
	return m, nil
}

func (r *rosterRepo) Get(ctx context.Context, roomID, userID string) (*model.Membership, error) {
	var m model.Membership
	err := r.collection.FindOne(ctx, bson.M{"room_id": roomID, "user_id": userID}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *rosterRepo) List(ctx context.Context, roomID string) ([]model.Membership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	cur, err := r.collection.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []model.Membership
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *rosterRepo) RemoveAll(ctx context.Context, roomID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"room_id": roomID})
	return err
}
