package model

import "time"

// ChatMessage is a room-scoped message. Clients poll for new messages.
type ChatMessage struct {
	ID       string    `json:"-" bson:"_id"`
	RoomID   string    `json:"room_id" bson:"room_id"`
	SenderID string    `json:"sender_id" bson:"sender_id"`
	Message  string    `json:"message" bson:"message"`
	SentAt   time.Time `json:"timestamp" bson:"sent_at"`
}
