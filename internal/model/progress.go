package model

// Progress tracks the highest single-player level a user has completed
// in a genre. CompletedLevels is monotonically non-decreasing; a level
// only ever pays out once.
type Progress struct {
	UserID          string `json:"user_id" bson:"user_id"`
	Genre           string `json:"genre" bson:"genre"`
	CompletedLevels int    `json:"completed_levels" bson:"completed_levels"`
}

// Unlocked reports whether a level is playable given the levels
// completed so far: the next level after the last completed one.
func Unlocked(levelNumber, completedLevels int) bool {
	return levelNumber <= completedLevels+1
}
