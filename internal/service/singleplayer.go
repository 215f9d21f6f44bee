package service

import (
	"context"
	"fmt"

	"emojiparty/internal/repository"
)

// Singleplayer handles level-based solo play. There is no turn concept:
// each submission stands alone, and the progress gate makes sure a
// level only ever pays out once.
type Singleplayer struct {
	catalog     *Catalog
	progress    repository.ProgressRepo
	leaderboard *Leaderboard
}

func NewSingleplayer(catalog *Catalog, progress repository.ProgressRepo, leaderboard *Leaderboard) *Singleplayer {
	return &Singleplayer{
		catalog:     catalog,
		progress:    progress,
		leaderboard: leaderboard,
	}
}

// SingleplayerResult is returned for every solo submission.
type SingleplayerResult struct {
	Correct  bool `json:"correct"`
	NewScore int  `json:"new_score"`
}

// SubmitAnswer checks the answer for a genre's level. A correct answer
// on a not-yet-completed level advances progress and adds 10 points
// under the genre; replaying a completed level scores nothing.
func (s *Singleplayer) SubmitAnswer(ctx context.Context, userID, genre string, levelNumber int, answer string) (*SingleplayerResult, error) {
	puzzle, err := s.catalog.ByLevel(ctx, genre, levelNumber)
	if err != nil {
		return nil, err
	}

	correct := answerMatches(answer, puzzle.CorrectAnswer)

	completed := 0
	prog, err := s.progress.Get(ctx, userID, puzzle.Genre)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if prog != nil {
		completed = prog.CompletedLevels
	}

	newScore, err := s.leaderboard.Score(ctx, userID, puzzle.Genre)
	if err != nil {
		return nil, err
	}

	if correct && levelNumber > completed {
		if err := s.progress.Advance(ctx, userID, puzzle.Genre, levelNumber); err != nil {
			return nil, fmt.Errorf("failed to advance progress: %w", err)
		}
		newScore, err = s.leaderboard.Add(ctx, userID, puzzle.Genre, PointsPerCorrectAnswer)
		if err != nil {
			return nil, err
		}
	}

	return &SingleplayerResult{Correct: correct, NewScore: newScore}, nil
}

// Score returns the user's accumulated single-player score for a genre.
func (s *Singleplayer) Score(ctx context.Context, userID, genre string) (int, error) {
	return s.leaderboard.Score(ctx, userID, genre)
}
