package model

import "time"

// Roles carried in token claims. Only these two pass verification.
const (
	RoleAuthenticated = "authenticated"
	RoleAdmin         = "admin"
)

// User is a registered account. PasswordHash is a bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
