package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"emojiparty/internal/model"
	"emojiparty/internal/repository"
)

// Catalog is the read-only view of the emoji puzzle collection.
type Catalog struct {
	puzzles  repository.PuzzleRepo
	progress repository.ProgressRepo
}

func NewCatalog(puzzles repository.PuzzleRepo, progress repository.ProgressRepo) *Catalog {
	return &Catalog{puzzles: puzzles, progress: progress}
}

func (c *Catalog) Genres(ctx context.Context) ([]string, error) {
	genres, err := c.puzzles.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	if len(genres) == 0 {
		return nil, ErrGenresNotFound
	}
	return genres, nil
}

func (c *Catalog) ByID(ctx context.Context, id string) (*model.Puzzle, error) {
	puzzle, err := c.puzzles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}
	return puzzle, nil
}

func (c *Catalog) ByGenre(ctx context.Context, genre string) ([]model.Puzzle, error) {
	puzzles, err := c.puzzles.ByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	if len(puzzles) == 0 {
		return nil, ErrPuzzleNotFound
	}
	return puzzles, nil
}

func (c *Catalog) ByLevel(ctx context.Context, genre string, levelNumber int) (*model.Puzzle, error) {
	puzzle, err := c.puzzles.ByLevel(ctx, genre, levelNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up level: %w", err)
	}
	if puzzle == nil {
		return nil, ErrLevelNotFound
	}
	return puzzle, nil
}

func (c *Catalog) RandomByGenre(ctx context.Context, genre string) (*model.Puzzle, error) {
	puzzles, err := c.ByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return &puzzles[rand.IntN(len(puzzles))], nil
}

// Levels returns a genre's puzzles in level order with each level's
// unlock state for the user: the next level after the last completed
// one is playable.
func (c *Catalog) Levels(ctx context.Context, userID, genre string) ([]model.LevelView, int, error) {
	completed := 0
	prog, err := c.progress.Get(ctx, userID, genre)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load progress: %w", err)
	}
	if prog != nil {
		completed = prog.CompletedLevels
	}

	puzzles, err := c.puzzles.ByGenreOrdered(ctx, genre)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list levels: %w", err)
	}
	if len(puzzles) == 0 {
		return nil, 0, ErrLevelNotFound
	}

	levels := make([]model.LevelView, len(puzzles))
	for i, p := range puzzles {
		levels[i] = model.LevelView{
			LevelNumber:   p.LevelNumber,
			EmojiClue:     p.EmojiClue,
			CorrectAnswer: p.CorrectAnswer,
			IsUnlocked:    model.Unlocked(p.LevelNumber, completed),
		}
	}
	return levels, completed, nil
}
