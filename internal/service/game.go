package service

import (
	"context"
	"fmt"
	"time"

	"emojiparty/internal/model"
	"emojiparty/internal/repository"

	"github.com/google/uuid"
)

// PointsPerCorrectAnswer is the fixed award for a correct guess.
const PointsPerCorrectAnswer = 10

// Game is the turn-based session state machine. Every transition is
// written with a version check, so of two concurrent submissions
// against the same room exactly one is accepted.
type Game struct {
	rooms       repository.RoomRepo
	roster      repository.RosterRepo
	sessions    repository.SessionRepo
	puzzles     repository.PuzzleRepo
	catalog     *Catalog
	leaderboard *Leaderboard
	turnWindow  time.Duration
}

func NewGame(
	rooms repository.RoomRepo,
	roster repository.RosterRepo,
	sessions repository.SessionRepo,
	puzzles repository.PuzzleRepo,
	catalog *Catalog,
	leaderboard *Leaderboard,
	turnWindow time.Duration,
) *Game {
	return &Game{
		rooms:       rooms,
		roster:      roster,
		sessions:    sessions,
		puzzles:     puzzles,
		catalog:     catalog,
		leaderboard: leaderboard,
		turnWindow:  turnWindow,
	}
}

// StartedTurn is returned when a new puzzle is put in play.
type StartedTurn struct {
	PuzzleID    string    `json:"puzzle_id"`
	EmojiClue   string    `json:"emoji_clue"`
	CurrentTurn string    `json:"current_turn"`
	TurnEndTime time.Time `json:"turn_end_time"`
}

// StartTurn puts a random puzzle from the genre in play and starts the
// turn clock. Any member may fetch a puzzle. The first call hands the
// turn from the host to the first non-host player; later calls keep
// the rotation where it is.
func (g *Game) StartTurn(ctx context.Context, roomID, genre string) (*StartedTurn, error) {
	room, session, err := g.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrGameInactive
	}

	puzzle, err := g.catalog.RandomByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}

	return g.putInPlay(ctx, room, session, puzzle)
}

// SetCustomPuzzle stores a host-authored clue under the multiplayer
// genre and puts it in play. Host only.
func (g *Game) SetCustomPuzzle(ctx context.Context, roomID, callerID, emojiClue, correctAnswer string) (*StartedTurn, error) {
	room, session, err := g.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != callerID {
		return nil, ErrNotHost
	}
	if !session.IsActive {
		return nil, ErrGameInactive
	}

	puzzle := &model.Puzzle{
		ID:            uuid.New().String(),
		Genre:         model.GenreMultiplayer,
		EmojiClue:     emojiClue,
		CorrectAnswer: correctAnswer,
	}
	if err := g.puzzles.Insert(ctx, puzzle); err != nil {
		return nil, fmt.Errorf("failed to store puzzle: %w", err)
	}

	return g.putInPlay(ctx, room, session, puzzle)
}

func (g *Game) putInPlay(ctx context.Context, room *model.Room, session *model.Session, puzzle *model.Puzzle) (*StartedTurn, error) {
	eligible, err := g.eligiblePlayers(ctx, room)
	if err != nil {
		return nil, err
	}
	if len(eligible) < 1 {
		return nil, ErrInsufficientPlayers
	}

	// Hand the turn to the first guesser if rotation has not started;
	// mid-game puzzle swaps keep the current holder.
	if session.CurrentTurn == room.HostID || session.CurrentTurn == "" {
		session.CurrentTurn = eligible[0]
	}

	deadline := time.Now().UTC().Add(g.turnWindow)
	session.Puzzle = &model.SessionPuzzle{PuzzleID: puzzle.ID, EmojiClue: puzzle.EmojiClue}
	session.TurnDeadline = &deadline

	if err := g.sessions.UpdateVersioned(ctx, session); err != nil {
		return nil, err
	}

	return &StartedTurn{
		PuzzleID:    puzzle.ID,
		EmojiClue:   puzzle.EmojiClue,
		CurrentTurn: session.CurrentTurn,
		TurnEndTime: deadline,
	}, nil
}

// SubmitAnswer applies one turn transition: ownership and deadline
// checks, answer matching, scoring, rotation, and round bookkeeping.
// When the round count is exhausted the session goes inactive for good
// and final scores are flushed to the leaderboard.
func (g *Game) SubmitAnswer(ctx context.Context, roomID, userID, puzzleID, answer string) (*model.SubmitResult, error) {
	room, session, err := g.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrGameInactive
	}
	if userID == room.HostID {
		return nil, ErrHostNotAllowed
	}
	if session.CurrentTurn != userID {
		return nil, ErrWrongTurn
	}

	eligible, err := g.eligiblePlayers(ctx, room)
	if err != nil {
		return nil, err
	}
	if len(eligible) < 1 {
		return nil, ErrInsufficientPlayers
	}

	// Lazy deadline enforcement: a late submission forfeits the turn.
	// The skip still advances the rotation and the round counter.
	if session.TurnDeadline != nil && time.Now().UTC().After(*session.TurnDeadline) {
		if err := g.advance(ctx, session, eligible, userID); err != nil {
			return nil, err
		}
		return nil, ErrTurnExpired
	}

	puzzle, err := g.puzzles.GetByID(ctx, puzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}

	correct := answerMatches(answer, puzzle.CorrectAnswer)
	if session.Scores == nil {
		session.Scores = map[string]int{}
	}
	if correct {
		session.Scores[userID] += PointsPerCorrectAnswer
	}

	if err := g.advance(ctx, session, eligible, userID); err != nil {
		return nil, err
	}

	result := &model.SubmitResult{
		Correct:  correct,
		NewScore: session.Scores[userID],
		Scores:   session.Scores,
		GameOver: !session.IsActive,
	}
	if session.IsActive {
		result.NextTurn = session.CurrentTurn
	} else {
		result.Winner = winner(eligible, session.Scores)
	}
	return result, nil
}

// advance moves the rotation and round counter past userID's turn and
// writes the session conditionally. Exhausting the rounds deactivates
// the session permanently and flushes final scores to the leaderboard,
// so a game that ends on a skipped turn still records its scores.
func (g *Game) advance(ctx context.Context, session *model.Session, eligible []string, userID string) error {
	session.CurrentRound++
	if session.CurrentRound > session.TotalRounds {
		session.IsActive = false
		session.TurnDeadline = nil
		session.Puzzle = nil
	} else {
		session.CurrentTurn = nextPlayer(eligible, userID)
		deadline := time.Now().UTC().Add(g.turnWindow)
		session.TurnDeadline = &deadline
	}
	if err := g.sessions.UpdateVersioned(ctx, session); err != nil {
		return err
	}
	if !session.IsActive {
		return g.flushScores(ctx, session.Scores)
	}
	return nil
}

// TurnInfo is the polling read of whose turn it is.
func (g *Game) TurnInfo(ctx context.Context, roomID string) (*model.TurnInfo, error) {
	session, err := g.session(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &model.TurnInfo{
		CurrentTurn:  session.CurrentTurn,
		CurrentRound: session.CurrentRound,
		TotalRounds:  session.TotalRounds,
		IsActive:     session.IsActive,
	}, nil
}

// State returns the full session record.
func (g *Game) State(ctx context.Context, roomID string) (*model.Session, error) {
	return g.session(ctx, roomID)
}

// UpdateState is the host's raw state override: it swaps the score map
// and turn holder without scoring. Kept for host tooling; regular play
// goes through SubmitAnswer.
func (g *Game) UpdateState(ctx context.Context, roomID, callerID, nextTurn string, scores map[string]int) error {
	room, session, err := g.load(ctx, roomID)
	if err != nil {
		return err
	}
	if room.HostID != callerID {
		return ErrNotHost
	}

	session.CurrentTurn = nextTurn
	session.Scores = scores
	return g.sessions.UpdateVersioned(ctx, session)
}

func (g *Game) load(ctx context.Context, roomID string) (*model.Room, *model.Session, error) {
	room, err := g.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return nil, nil, ErrRoomNotFound
	}
	session, err := g.session(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	return room, session, nil
}

func (g *Game) session(ctx context.Context, roomID string) (*model.Session, error) {
	session, err := g.sessions.Get(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// eligiblePlayers lists the rotation in join order: everyone in the
// room except the host, who sets puzzles instead of guessing.
func (g *Game) eligiblePlayers(ctx context.Context, room *model.Room) ([]string, error) {
	members, err := g.roster.List(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	eligible := make([]string, 0, len(members))
	for _, m := range members {
		if m.UserID != room.HostID {
			eligible = append(eligible, m.UserID)
		}
	}
	return eligible, nil
}

func (g *Game) flushScores(ctx context.Context, scores map[string]int) error {
	for userID, score := range scores {
		if score == 0 {
			continue
		}
		if _, err := g.leaderboard.Add(ctx, userID, model.GenreMultiplayer, score); err != nil {
			return fmt.Errorf("failed to record final score: %w", err)
		}
	}
	return nil
}

// nextPlayer picks the player after current in join order, cyclically.
// If current is no longer in the rotation, it restarts at the front.
func nextPlayer(eligible []string, current string) string {
	for i, id := range eligible {
		if id == current {
			return eligible[(i+1)%len(eligible)]
		}
	}
	return eligible[0]
}

// winner returns the highest-scored player; ties go to the earliest
// joiner, so the result is deterministic.
func winner(eligible []string, scores map[string]int) string {
	var best string
	bestScore := -1
	for _, id := range eligible {
		if scores[id] > bestScore {
			best = id
			bestScore = scores[id]
		}
	}
	return best
}
