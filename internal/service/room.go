package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"emojiparty/internal/cache"
	"emojiparty/internal/model"
	"emojiparty/internal/repository"

	"github.com/google/uuid"
)

// Rooms handles room lifecycle: creation with a collision-checked join
// code, lookup, idempotent join, and end-game purge.
type Rooms struct {
	rooms         repository.RoomRepo
	roster        repository.RosterRepo
	sessions      repository.SessionRepo
	chat          repository.ChatRepo
	roomCache     cache.RoomCache
	defaultRounds int
}

func NewRooms(
	rooms repository.RoomRepo,
	roster repository.RosterRepo,
	sessions repository.SessionRepo,
	chat repository.ChatRepo,
	roomCache cache.RoomCache,
	defaultRounds int,
) *Rooms {
	return &Rooms{
		rooms:         rooms,
		roster:        roster,
		sessions:      sessions,
		chat:          chat,
		roomCache:     roomCache,
		defaultRounds: defaultRounds,
	}
}

// Create persists a new room, its session (round 1, active, host on
// turn until rotation starts), and the host's roster seat.
func (s *Rooms) Create(ctx context.Context, hostID, displayName string, totalRounds int) (*model.Room, error) {
	if totalRounds <= 0 {
		totalRounds = s.defaultRounds
	}

	code, err := s.generateRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate room code: %w", err)
	}

	now := time.Now().UTC()
	room := &model.Room{
		ID:          uuid.New().String(),
		Code:        code,
		HostID:      hostID,
		TotalRounds: totalRounds,
		CreatedAt:   now,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	session := &model.Session{
		RoomID:       room.ID,
		CurrentTurn:  hostID,
		CurrentRound: 1,
		TotalRounds:  totalRounds,
		IsActive:     true,
		Scores:       map[string]int{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}

	if displayName == "" {
		displayName = "Host"
	}
	if _, err := s.roster.Insert(ctx, &model.Membership{
		RoomID:      room.ID,
		UserID:      hostID,
		DisplayName: displayName,
		JoinedAt:    now,
	}); err != nil {
		return nil, fmt.Errorf("failed to seat host: %w", err)
	}

	meta := &model.RoomMeta{
		RoomID:    room.ID,
		HostID:    hostID,
		Active:    true,
		CreatedAt: now,
	}
	if err := s.roomCache.SetMeta(ctx, code, meta); err != nil {
		return nil, fmt.Errorf("failed to cache room: %w", err)
	}

	return room, nil
}

// Join adds a player to the room behind a code. The code is resolved
// through the cache first; Mongo is the fallback when the meta entry
// is missing or the cache is down. Joining twice with the same user
// returns the existing seat.
func (s *Rooms) Join(ctx context.Context, roomCode, userID, displayName string) (*model.Membership, error) {
	var roomID string
	meta, err := s.roomCache.GetMeta(ctx, roomCode)
	if err != nil {
		log.Printf("room cache lookup failed for %s: %v", roomCode, err)
	}
	if meta != nil {
		roomID = meta.RoomID
	} else {
		room, err := s.FindByCode(ctx, roomCode)
		if err != nil {
			return nil, err
		}
		roomID = room.ID
	}

	member, err := s.roster.Insert(ctx, &model.Membership{
		RoomID:      roomID,
		UserID:      userID,
		DisplayName: displayName,
		JoinedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}
	return member, nil
}

func (s *Rooms) FindByCode(ctx context.Context, code string) (*model.Room, error) {
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *Rooms) FindByID(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *Rooms) Members(ctx context.Context, roomID string) ([]model.Membership, error) {
	return s.roster.List(ctx, roomID)
}

// End purges the room, its session, roster, and chat. Host only.
func (s *Rooms) End(ctx context.Context, roomID, callerID string) error {
	room, err := s.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.HostID != callerID {
		return ErrNotHost
	}

	if err := s.sessions.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	if err := s.roster.RemoveAll(ctx, roomID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}
	if err := s.chat.RemoveAll(ctx, roomID); err != nil {
		return fmt.Errorf("failed to clear chat: %w", err)
	}
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return s.roomCache.Delete(ctx, room.Code)
}

// generateRoomCode creates a 6-char code, retrying on collision. Both
// the cache and the unique index are consulted so a cold cache cannot
// hand out a duplicate.
func (s *Rooms) generateRoomCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		cached, err := s.roomCache.Exists(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if cached {
			continue
		}
		stored, err := s.rooms.CodeExists(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if !stored {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique room code")
}
