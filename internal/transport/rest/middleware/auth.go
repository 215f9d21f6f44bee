package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"emojiparty/internal/model"
	"emojiparty/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware verifies bearer tokens and puts the caller's identity
// on the request context.
type AuthMiddleware struct {
	auth *service.Auth
}

func NewAuthMiddleware(auth *service.Auth) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireUser rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, status, msg := m.verify(r)
		if identity == nil {
			http.Error(w, `{"error":"`+msg+`"}`, status)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin additionally rejects non-admin roles with 403.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, status, msg := m.verify(r)
		if identity == nil {
			http.Error(w, `{"error":"`+msg+`"}`, status)
			return
		}
		if identity.Role != model.RoleAdmin {
			http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) verify(r *http.Request) (*model.Identity, int, string) {
	token := extractBearerToken(r)
	if token == "" {
		return nil, http.StatusUnauthorized, "missing authorization header"
	}
	identity, err := m.auth.Verify(token)
	if err != nil {
		if errors.Is(err, service.ErrForbiddenRole) {
			return nil, http.StatusForbidden, "unauthorized user role"
		}
		return nil, http.StatusUnauthorized, "invalid or expired token"
	}
	return identity, 0, ""
}

// GetIdentity extracts the verified caller from the context.
func GetIdentity(ctx context.Context) *model.Identity {
	if v := ctx.Value(identityKey); v != nil {
		return v.(*model.Identity)
	}
	return nil
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
