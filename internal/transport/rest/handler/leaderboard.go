package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"emojiparty/internal/cache"
	"emojiparty/internal/service"
	"emojiparty/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// LeaderboardHandler serves ranked score views and score submission.
type LeaderboardHandler struct {
	leaderboard *service.Leaderboard
}

func NewLeaderboardHandler(leaderboard *service.Leaderboard) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// SubmitScoreRequest is the request body for POST /leaderboard/submit_score.
type SubmitScoreRequest struct {
	Score *int   `json:"score"`
	Genre string `json:"genre"`
}

// SubmitScore handles POST /leaderboard/submit_score. Submissions add
// to the caller's running total.
func (h *LeaderboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "score is required")
		return
	}
	if *req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must be non-negative")
		return
	}

	newTotal, err := h.leaderboard.Add(r.Context(), identity.UserID, req.Genre, *req.Score)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Score submitted successfully!",
		"new_score": newTotal,
	})
}

// Get handles GET /leaderboard?page=&per_page=
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	result, err := h.leaderboard.Page(r.Context(), page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Top handles GET /leaderboard/top?limit=. Served from the Redis
// mirror, so it skips Mongo entirely.
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []cache.CachedEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

// Rank handles GET /leaderboard/rank/{user_id}. Rank is 1-based; an
// unranked user gets -1.
func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(mux.Vars(r)["user_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user_id format, must be a valid UUID")
		return
	}

	rank, err := h.leaderboard.Rank(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"rank":    rank,
	})
}

// AdminUpdateRequest is the request body for the admin score override.
type AdminUpdateRequest struct {
	UserID string `json:"user_id"`
	Genre  string `json:"genre"`
	Score  *int   `json:"score"`
}

// AdminUpdate handles POST /leaderboard/admin/update_score. Unlike
// submissions, the admin path overwrites the stored total.
func (h *LeaderboardHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, ok := parseUUID(req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}
	if req.Score == nil || *req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score is required and must be non-negative")
		return
	}

	if err := h.leaderboard.Set(r.Context(), userID, req.Genre, *req.Score); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Score updated successfully!"})
}

// AdminResetUserRequest is the request body for the admin user reset.
type AdminResetUserRequest struct {
	UserID string `json:"user_id"`
}

// AdminResetUser handles POST /leaderboard/admin/reset_user
func (h *LeaderboardHandler) AdminResetUser(w http.ResponseWriter, r *http.Request) {
	var req AdminResetUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, ok := parseUUID(req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}

	if err := h.leaderboard.ResetUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User scores reset."})
}

// AdminReset handles POST /leaderboard/admin/reset_leaderboard
func (h *LeaderboardHandler) AdminReset(w http.ResponseWriter, r *http.Request) {
	if err := h.leaderboard.ResetAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Leaderboard cleared."})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
