package service

import (
	"context"
	"fmt"
	"log"

	"emojiparty/internal/cache"
	"emojiparty/internal/model"
	"emojiparty/internal/repository"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Leaderboard accumulates cumulative scores in Mongo and mirrors them
// into Redis ZSETs. Submit paths add; the admin path overwrites.
type Leaderboard struct {
	repo  repository.LeaderboardRepo
	cache cache.LeaderboardCache
}

func NewLeaderboard(repo repository.LeaderboardRepo, cache cache.LeaderboardCache) *Leaderboard {
	return &Leaderboard{repo: repo, cache: cache}
}

// Add increments a user's total and returns the new value. Mongo is
// the source of truth; a failed mirror write is logged, not fatal.
func (s *Leaderboard) Add(ctx context.Context, userID, genre string, delta int) (int, error) {
	score, err := s.repo.Incr(ctx, userID, genre, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}
	if err := s.cache.IncrScore(ctx, genre, userID, delta); err != nil {
		log.Printf("leaderboard cache update failed for %s: %v", userID, err)
	}
	return score.TotalScore, nil
}

// Set overwrites a user's total (admin endpoints only).
func (s *Leaderboard) Set(ctx context.Context, userID, genre string, score int) error {
	if err := s.repo.Set(ctx, userID, genre, score); err != nil {
		return fmt.Errorf("failed to set score: %w", err)
	}
	if err := s.cache.SetScore(ctx, genre, userID, score); err != nil {
		log.Printf("leaderboard cache set failed for %s: %v", userID, err)
	}
	return nil
}

// Score returns a user's total for a genre, zero when absent.
func (s *Leaderboard) Score(ctx context.Context, userID, genre string) (int, error) {
	score, err := s.repo.Get(ctx, userID, genre)
	if err != nil {
		return 0, fmt.Errorf("failed to read score: %w", err)
	}
	if score == nil {
		return 0, nil
	}
	return score.TotalScore, nil
}

// Page returns one page of the ranked leaderboard, strictly descending
// by total score with stable insertion order on ties.
func (s *Leaderboard) Page(ctx context.Context, page, perPage int) (*model.LeaderboardPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	offset := int64(page-1) * int64(perPage)
	scores, err := s.repo.Page(ctx, offset, int64(perPage))
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]model.RankedEntry, len(scores))
	for i, sc := range scores {
		entries[i] = model.RankedEntry{
			UserID:     sc.UserID,
			TotalScore: sc.TotalScore,
			Rank:       int(offset) + i + 1,
			UpdatedAt:  sc.UpdatedAt,
		}
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &model.LeaderboardPage{
		Entries:      entries,
		Page:         page,
		PerPage:      perPage,
		TotalPages:   totalPages,
		TotalEntries: total,
	}, nil
}

// Top serves the first N entries from the Redis mirror.
func (s *Leaderboard) Top(ctx context.Context, limit int) ([]cache.CachedEntry, error) {
	return s.cache.Top(ctx, limit)
}

// Rank returns a user's 1-based global rank, -1 when unranked.
func (s *Leaderboard) Rank(ctx context.Context, userID string) (int64, error) {
	return s.cache.Rank(ctx, userID)
}

// ResetUser zeroes all of a user's rows.
func (s *Leaderboard) ResetUser(ctx context.Context, userID string) error {
	if err := s.repo.ResetUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset user: %w", err)
	}
	return s.cache.RemoveUser(ctx, userID)
}

// ResetAll clears the whole leaderboard (admin only).
func (s *Leaderboard) ResetAll(ctx context.Context) error {
	if err := s.repo.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}
	return s.cache.Clear(ctx)
}
