package service

import (
	"context"
	"testing"
	"time"

	"emojiparty/internal/model"
	"emojiparty/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	rooms    *fakeRoomRepo
	roster   *fakeRosterRepo
	sessions *fakeSessionRepo
	puzzles  *fakePuzzleRepo
	lbRepo   *fakeLeaderboardRepo
	game     *Game
	room     *model.Room
}

func newGameFixture(t *testing.T, totalRounds int, hostID string, players ...string) *gameFixture {
	t.Helper()
	ctx := context.Background()

	f := &gameFixture{
		rooms:    newFakeRoomRepo(),
		roster:   &fakeRosterRepo{},
		sessions: newFakeSessionRepo(),
		puzzles:  &fakePuzzleRepo{},
		lbRepo:   &fakeLeaderboardRepo{},
	}

	f.room = &model.Room{
		ID:          "room-1",
		Code:        "ABCDEF",
		HostID:      hostID,
		TotalRounds: totalRounds,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.rooms.Create(ctx, f.room))
	require.NoError(t, f.sessions.Create(ctx, &model.Session{
		RoomID:       f.room.ID,
		CurrentTurn:  hostID,
		CurrentRound: 1,
		TotalRounds:  totalRounds,
		IsActive:     true,
		Scores:       map[string]int{},
	}))

	joined := time.Now()
	for i, id := range append([]string{hostID}, players...) {
		_, err := f.roster.Insert(ctx, &model.Membership{
			RoomID:      f.room.ID,
			UserID:      id,
			DisplayName: id,
			JoinedAt:    joined.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	f.puzzles.puzzles = append(f.puzzles.puzzles, model.Puzzle{
		ID:            "pz1",
		Genre:         "movies",
		EmojiClue:     "🦁👑",
		CorrectAnswer: "The Lion King",
	})

	catalog := NewCatalog(f.puzzles, newFakeProgressRepo())
	leaderboard := NewLeaderboard(f.lbRepo, newFakeLeaderboardCache())
	f.game = NewGame(f.rooms, f.roster, f.sessions, f.puzzles, catalog, leaderboard, time.Hour)
	return f
}

func TestStartTurnHandsTurnToFirstGuesser(t *testing.T) {
	f := newGameFixture(t, 2, "host", "alice", "bob")
	ctx := context.Background()

	turn, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)
	assert.Equal(t, "alice", turn.CurrentTurn)
	assert.Equal(t, "pz1", turn.PuzzleID)
	assert.False(t, turn.TurnEndTime.IsZero())
}

func TestStartTurnInsufficientPlayers(t *testing.T) {
	f := newGameFixture(t, 2, "host")
	_, err := f.game.StartTurn(context.Background(), f.room.ID, "movies")
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestStartTurnKeepsRotationMidGame(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)
	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "alice", "pz1", "the lion king")
	require.NoError(t, err)

	// Fetching a fresh puzzle must not reset the turn to alice.
	turn, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)
	assert.Equal(t, "bob", turn.CurrentTurn)
}

func TestSubmitAnswerWrongTurnMutatesNothing(t *testing.T) {
	f := newGameFixture(t, 2, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "bob", "pz1", "The Lion King")
	assert.ErrorIs(t, err, ErrWrongTurn)

	info, err := f.game.TurnInfo(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.CurrentTurn)
	assert.Equal(t, 1, info.CurrentRound)
	assert.True(t, info.IsActive)
}

func TestSubmitAnswerHostNotAllowed(t *testing.T) {
	f := newGameFixture(t, 2, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "host", "pz1", "The Lion King")
	assert.ErrorIs(t, err, ErrHostNotAllowed)
}

func TestSubmitAnswerInactiveGame(t *testing.T) {
	f := newGameFixture(t, 2, "host", "alice")
	f.sessions.sessions[f.room.ID].IsActive = false

	_, err := f.game.SubmitAnswer(context.Background(), f.room.ID, "alice", "pz1", "x")
	assert.ErrorIs(t, err, ErrGameInactive)
}

func TestTwoPlayerGameToCompletion(t *testing.T) {
	f := newGameFixture(t, 2, "host", "bob")
	ctx := context.Background()

	turn, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)
	require.Equal(t, "bob", turn.CurrentTurn)

	// Round 1: correct answer with messy casing and whitespace.
	res, err := f.game.SubmitAnswer(ctx, f.room.ID, "bob", "pz1", "  the lion king ")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 10, res.NewScore)
	assert.Equal(t, "bob", res.NextTurn) // sole guesser rotates to himself
	assert.False(t, res.GameOver)

	info, err := f.game.TurnInfo(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, info.CurrentRound)
	assert.True(t, info.IsActive)

	// Round 2 exhausts the game.
	res, err = f.game.SubmitAnswer(ctx, f.room.ID, "bob", "pz1", "THE LION KING")
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.Equal(t, "bob", res.Winner)
	assert.Equal(t, 20, res.Scores["bob"])

	// Final scores land on the leaderboard under the multiplayer genre.
	score, err := f.lbRepo.Get(ctx, "bob", model.GenreMultiplayer)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 20, score.TotalScore)

	// Inactive for good: no further score-mutating transitions.
	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "bob", "pz1", "The Lion King")
	assert.ErrorIs(t, err, ErrGameInactive)
}

func TestSubmitAnswerWrongGuessStillRotates(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	res, err := f.game.SubmitAnswer(ctx, f.room.ID, "alice", "pz1", "frozen")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.NewScore)
	assert.Equal(t, "bob", res.NextTurn)
}

func TestSubmitAnswerExpiredTurnSkips(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Minute)
	f.sessions.sessions[f.room.ID].TurnDeadline = &past

	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "alice", "pz1", "The Lion King")
	assert.ErrorIs(t, err, ErrTurnExpired)

	// The skip advanced the rotation and round without scoring.
	info, err := f.game.TurnInfo(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", info.CurrentTurn)
	assert.Equal(t, 2, info.CurrentRound)
	assert.Empty(t, f.sessions.sessions[f.room.ID].Scores)
}

func TestExpiredSkipOnFinalRoundFlushesScores(t *testing.T) {
	f := newGameFixture(t, 2, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	// Round 1: alice scores.
	res, err := f.game.SubmitAnswer(ctx, f.room.ID, "alice", "pz1", "The Lion King")
	require.NoError(t, err)
	require.False(t, res.GameOver)

	// Final round ends on an expired turn instead of a submission.
	past := time.Now().UTC().Add(-time.Minute)
	f.sessions.sessions[f.room.ID].TurnDeadline = &past

	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "bob", "pz1", "The Lion King")
	assert.ErrorIs(t, err, ErrTurnExpired)

	info, err := f.game.TurnInfo(ctx, f.room.ID)
	require.NoError(t, err)
	assert.False(t, info.IsActive)

	// The skip still flushes final scores to the leaderboard.
	score, err := f.lbRepo.Get(ctx, "alice", model.GenreMultiplayer)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 10, score.TotalScore)
}

func TestSubmitAnswerConcurrentConflict(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.StartTurn(ctx, f.room.ID, "movies")
	require.NoError(t, err)

	f.sessions.conflictNext = true
	_, err = f.game.SubmitAnswer(ctx, f.room.ID, "alice", "pz1", "The Lion King")
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}

func TestSetCustomPuzzleHostOnly(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	_, err := f.game.SetCustomPuzzle(ctx, f.room.ID, "alice", "🚢🧊", "Titanic")
	assert.ErrorIs(t, err, ErrNotHost)

	turn, err := f.game.SetCustomPuzzle(ctx, f.room.ID, "host", "🚢🧊", "Titanic")
	require.NoError(t, err)
	assert.Equal(t, "alice", turn.CurrentTurn)

	puzzle, err := f.puzzles.GetByID(ctx, turn.PuzzleID)
	require.NoError(t, err)
	require.NotNil(t, puzzle)
	assert.Equal(t, model.GenreMultiplayer, puzzle.Genre)
}

func TestUpdateStateHostOnly(t *testing.T) {
	f := newGameFixture(t, 5, "host", "alice", "bob")
	ctx := context.Background()

	err := f.game.UpdateState(ctx, f.room.ID, "alice", "bob", map[string]int{"bob": 5})
	assert.ErrorIs(t, err, ErrNotHost)

	require.NoError(t, f.game.UpdateState(ctx, f.room.ID, "host", "bob", map[string]int{"bob": 5}))
	session, err := f.game.State(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", session.CurrentTurn)
	assert.Equal(t, 5, session.Scores["bob"])
}

func TestNextPlayerCycles(t *testing.T) {
	eligible := []string{"a", "b", "c"}
	assert.Equal(t, "b", nextPlayer(eligible, "a"))
	assert.Equal(t, "c", nextPlayer(eligible, "b"))
	assert.Equal(t, "a", nextPlayer(eligible, "c"))
	assert.Equal(t, "a", nextPlayer(eligible, "gone"))
}

func TestWinnerTieBreakEarliestJoin(t *testing.T) {
	eligible := []string{"alice", "bob"}
	assert.Equal(t, "alice", winner(eligible, map[string]int{"alice": 20, "bob": 20}))
	assert.Equal(t, "bob", winner(eligible, map[string]int{"alice": 10, "bob": 20}))
	assert.Equal(t, "alice", winner(eligible, map[string]int{}))
}
