package model

import "time"

// SessionPuzzle is the clue currently in play for a room.
type SessionPuzzle struct {
	PuzzleID  string `json:"puzzle_id" bson:"puzzle_id"`
	EmojiClue string `json:"emoji_clue" bson:"emoji_clue"`
}

// Session is the mutable per-room game state: whose turn it is, the
// round counter, and the score map. Every accepted transition bumps
// Version; writers must pass the version they read so stale updates
// are rejected instead of overwriting each other.
type Session struct {
	RoomID       string         `json:"room_id" bson:"_id"`
	CurrentTurn  string         `json:"current_turn" bson:"current_turn"`
	CurrentRound int            `json:"current_round" bson:"current_round"`
	TotalRounds  int            `json:"total_rounds" bson:"total_rounds"`
	IsActive     bool           `json:"is_active" bson:"is_active"`
	Scores       map[string]int `json:"scores" bson:"scores"`
	Puzzle       *SessionPuzzle `json:"current_puzzle,omitempty" bson:"current_puzzle,omitempty"`
	TurnDeadline *time.Time     `json:"turn_end_time,omitempty" bson:"turn_deadline,omitempty"`
	Version      int64          `json:"-" bson:"version"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// TurnInfo is the polling view of a session.
type TurnInfo struct {
	CurrentTurn  string `json:"current_turn"`
	CurrentRound int    `json:"current_round"`
	TotalRounds  int    `json:"total_rounds"`
	IsActive     bool   `json:"is_active"`
}

// SubmitResult is returned after an accepted answer submission.
type SubmitResult struct {
	Correct  bool           `json:"correct"`
	NewScore int            `json:"new_score"`
	NextTurn string         `json:"next_turn,omitempty"`
	Winner   string         `json:"winner,omitempty"`
	Scores   map[string]int `json:"scores"`
	GameOver bool           `json:"game_over"`
}
