package repository

import (
	"context"

	"emojiparty/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PuzzleRepo interface {
	Insert(ctx context.Context, p *model.Puzzle) error
	GetByID(ctx context.Context, id string) (*model.Puzzle, error)
	Genres(ctx context.Context) ([]string, error)
	ByGenre(ctx context.Context, genre string) ([]model.Puzzle, error)
	// ByGenreOrdered returns a genre's puzzles ascending by level.
	ByGenreOrdered(ctx context.Context, genre string) ([]model.Puzzle, error)
	// ByLevel finds one genre's puzzle by level number. Level numbers
	// restart at 1 within each genre.
	ByLevel(ctx context.Context, genre string, levelNumber int) (*model.Puzzle, error)
}

type puzzleRepo struct {
	collection *mongo.Collection
}

func NewPuzzleRepo(db *mongo.Database) PuzzleRepo {
	return &puzzleRepo{collection: db.Collection("emoji_puzzles")}
}

func (r *puzzleRepo) Insert(ctx context.Context, p *model.Puzzle) error {
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *puzzleRepo) GetByID(ctx context.Context, id string) (*model.Puzzle, error) {
	var p model.Puzzle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepo) Genres(ctx context.Context) ([]string, error) {
	raw, err := r.collection.Distinct(ctx, "genre", bson.M{})
	if err != nil {
		return nil, err
	}
	genres := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			genres = append(genres, s)
		}
	}
	return genres, nil
}

func (r *puzzleRepo) ByGenre(ctx context.Context, genre string) ([]model.Puzzle, error) {
	return r.find(ctx, bson.M{"genre": genre}, nil)
}

func (r *puzzleRepo) ByGenreOrdered(ctx context.Context, genre string) ([]model.Puzzle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "level_number", Value: 1}})
	return r.find(ctx, bson.M{"genre": genre}, opts)
}

func (r *puzzleRepo) ByLevel(ctx context.Context, genre string, levelNumber int) (*model.Puzzle, error) {
	var p model.Puzzle
	err := r.collection.FindOne(ctx, bson.M{"genre": genre, "level_number": levelNumber}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Puzzle, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.collection.Find(ctx, filter, opts)
	} else {
		cur, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var puzzles []model.Puzzle
	if err := cur.All(ctx, &puzzles); err != nil {
		return nil, err
	}
	return puzzles, nil
}
