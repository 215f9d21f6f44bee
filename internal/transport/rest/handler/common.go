package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"emojiparty/internal/repository"
	"emojiparty/internal/service"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service sentinels to status codes. Unknown
// errors become a generic 500; the cause stays in the server log.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameInactive),
		errors.Is(err, service.ErrInsufficientPlayers),
		errors.Is(err, service.ErrTurnExpired),
		errors.Is(err, repository.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrWrongTurn),
		errors.Is(err, service.ErrHostNotAllowed),
		errors.Is(err, service.ErrNotHost),
		errors.Is(err, service.ErrForbiddenRole):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrPuzzleNotFound),
		errors.Is(err, service.ErrLevelNotFound),
		errors.Is(err, service.ErrGenresNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseUUID validates the canonical identifier format and returns the
// normalized form.
func parseUUID(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
