package handler

import (
	"encoding/json"
	"net/http"

	"emojiparty/internal/service"

	"github.com/gorilla/mux"
)

// SingleplayerHandler serves the level-based solo mode.
type SingleplayerHandler struct {
	catalog *service.Catalog
	solo    *service.Singleplayer
}

func NewSingleplayerHandler(catalog *service.Catalog, solo *service.Singleplayer) *SingleplayerHandler {
	return &SingleplayerHandler{catalog: catalog, solo: solo}
}

// GetGenres handles GET /singleplayer/get_genres
func (h *SingleplayerHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.Genres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"genres": genres})
}

// GetScore handles GET /singleplayer/get_score/{user_id}/{genre}
func (h *SingleplayerHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, ok := parseUUID(vars["user_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user_id format, must be a valid UUID")
		return
	}

	score, err := h.solo.Score(r.Context(), userID, vars["genre"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"score": score})
}

// GetLevels handles GET /singleplayer/get_levels/{user_id}/{genre}
func (h *SingleplayerHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, ok := parseUUID(vars["user_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user_id format, must be a valid UUID")
		return
	}

	levels, completed, err := h.catalog.Levels(r.Context(), userID, vars["genre"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"levels":           levels,
		"completed_levels": completed,
	})
}

// SPSubmitAnswerRequest is the request body for POST /singleplayer/submit_answer.
type SPSubmitAnswerRequest struct {
	UserID      string `json:"user_id"`
	Genre       string `json:"genre"`
	LevelNumber int    `json:"level_number"`
	Answer      string `json:"answer"`
}

// SubmitAnswer handles POST /singleplayer/submit_answer
func (h *SingleplayerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SPSubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, ok := parseUUID(req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}
	if req.Genre == "" || req.LevelNumber < 1 || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "genre, level_number, and answer are required")
		return
	}

	result, err := h.solo.SubmitAnswer(r.Context(), userID, req.Genre, req.LevelNumber, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
