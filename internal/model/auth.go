package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims issued at login. Subject is the user's
// UUID; Role gates admin-only endpoints.
type UserClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UserID string
	Role   string
}

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
