package model

import "time"

// Room is a play session container joined by a short human-entry code.
type Room struct {
	ID          string    `json:"room_id" bson:"_id"`
	Code        string    `json:"room_code" bson:"room_code"`
	HostID      string    `json:"host_id" bson:"host_id"`
	TotalRounds int       `json:"total_rounds" bson:"total_rounds"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// RoomMeta is the Redis-cached slice of a room used on hot paths
// (code collision checks, join).
type RoomMeta struct {
	RoomID    string    `json:"roomId"`
	HostID    string    `json:"hostId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Membership is one player's seat in a room. Join order determines
// turn rotation order.
type Membership struct {
	RoomID      string    `json:"room_id" bson:"room_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	DisplayName string    `json:"player_name" bson:"display_name"`
	JoinedAt    time.Time `json:"joined_at" bson:"joined_at"`
}
