package service

import (
	"context"
	"fmt"
	"time"

	"emojiparty/internal/model"
	"emojiparty/internal/repository"

	"github.com/google/uuid"
)

// Chat handles room-scoped messages. Clients poll for new ones.
type Chat struct {
	rooms repository.RoomRepo
	chat  repository.ChatRepo
}

func NewChat(rooms repository.RoomRepo, chat repository.ChatRepo) *Chat {
	return &Chat{rooms: rooms, chat: chat}
}

// Send stores a message after checking the room exists.
func (s *Chat) Send(ctx context.Context, roomID, senderID, message string) error {
	if err := s.roomExists(ctx, roomID); err != nil {
		return err
	}
	return s.chat.Insert(ctx, &model.ChatMessage{
		ID:       uuid.New().String(),
		RoomID:   roomID,
		SenderID: senderID,
		Message:  message,
		SentAt:   time.Now().UTC(),
	})
}

// Messages returns a room's messages oldest first.
func (s *Chat) Messages(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	if err := s.roomExists(ctx, roomID); err != nil {
		return nil, err
	}
	msgs, err := s.chat.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (s *Chat) roomExists(ctx context.Context, roomID string) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return ErrRoomNotFound
	}
	return nil
}
