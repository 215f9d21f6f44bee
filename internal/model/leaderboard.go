package model

import "time"

// Score is one user's cumulative total, optionally per genre.
// Genre "" holds the global total written by /leaderboard/submit_score.
type Score struct {
	UserID     string    `json:"user_id" bson:"user_id"`
	Genre      string    `json:"genre,omitempty" bson:"genre"`
	TotalScore int       `json:"total_score" bson:"total_score"`
	UpdatedAt  time.Time `json:"timestamp" bson:"updated_at"`
}

// RankedEntry is a leaderboard row with its 1-based rank.
type RankedEntry struct {
	UserID     string    `json:"user_id"`
	TotalScore int       `json:"total_score"`
	Rank       int       `json:"rank"`
	UpdatedAt  time.Time `json:"timestamp"`
}

// LeaderboardPage is a contiguous slice of the ranked leaderboard.
type LeaderboardPage struct {
	Entries      []RankedEntry `json:"leaderboard"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalPages   int           `json:"total_pages"`
	TotalEntries int64         `json:"total_entries"`
}
