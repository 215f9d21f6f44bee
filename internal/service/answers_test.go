package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerMatches(t *testing.T) {
	cases := []struct {
		guess     string
		canonical string
		want      bool
	}{
		{"Paris", "Paris", true},
		{"paris", "Paris", true},
		{"PARIS ", "Paris", true},
		{"  paris", " Paris ", true},
		{"The Lion King", "the lion king", true},
		{"Pari", "Paris", false},
		{"", "Paris", false},
		{"Lion King", "The Lion King", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, answerMatches(c.guess, c.canonical),
			"guess %q vs %q", c.guess, c.canonical)
	}
}
