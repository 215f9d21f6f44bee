package service

import "strings"

// answerMatches compares a player's guess to the canonical answer,
// ignoring case and surrounding whitespace.
func answerMatches(guess, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(canonical))
}
