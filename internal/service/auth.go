package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"emojiparty/internal/config"
	"emojiparty/internal/model"
	"emojiparty/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Auth handles signup, login, and bearer token verification.
type Auth struct {
	users     repository.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
	cfg       *config.Config
}

func NewAuth(users repository.UserRepo, cfg *config.Config) *Auth {
	return &Auth{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		cfg:       cfg,
	}
}

// Signup registers a new account. Emails listed in ADMIN_EMAILS get the
// admin role.
func (s *Auth) Signup(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.RoleAuthenticated
	if s.cfg.IsAdminEmail(email) {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, user)
}

// Login verifies credentials and issues a signed bearer token.
func (s *Auth) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &model.UserClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: signed}, nil
}

// Verify validates a bearer token and extracts the caller's identity.
// The subject must be a UUID and the role one of the known roles.
func (s *Auth) Verify(tokenString string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != model.RoleAuthenticated && claims.Role != model.RoleAdmin {
		return nil, ErrForbiddenRole
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.Identity{UserID: userID.String(), Role: claims.Role}, nil
}
