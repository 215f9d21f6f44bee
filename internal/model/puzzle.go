package model

// GenreMultiplayer tags puzzles set by hosts during multiplayer games,
// and the leaderboard rows written when such a game ends.
const GenreMultiplayer = "multiplayer"

// Puzzle is an immutable emoji clue with its canonical answer. Answers
// are matched case-insensitively after trimming surrounding whitespace.
type Puzzle struct {
	ID            string `json:"id" bson:"_id"`
	Genre         string `json:"genre" bson:"genre"`
	LevelNumber   int    `json:"level_number,omitempty" bson:"level_number,omitempty"`
	EmojiClue     string `json:"emoji_clue" bson:"emoji_clue"`
	CorrectAnswer string `json:"correct_answer" bson:"correct_answer"`
}

// LevelView is a single-player level with its unlock state for one user.
type LevelView struct {
	LevelNumber   int    `json:"level_number"`
	EmojiClue     string `json:"emoji_clue"`
	CorrectAnswer string `json:"correct_answer"`
	IsUnlocked    bool   `json:"is_unlocked"`
}
