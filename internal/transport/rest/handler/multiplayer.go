package handler

import (
	"encoding/json"
	"net/http"

	"emojiparty/internal/service"
)

// MultiplayerHandler serves the unauthenticated multiplayer variant,
// where the caller passes user ids in the body.
type MultiplayerHandler struct {
	rooms *service.Rooms
	game  *service.Game
}

func NewMultiplayerHandler(rooms *service.Rooms, game *service.Game) *MultiplayerHandler {
	return &MultiplayerHandler{rooms: rooms, game: game}
}

// MPCreateRoomRequest is the request body for POST /multiplayer/create_room.
type MPCreateRoomRequest struct {
	HostID      string `json:"host_id"`
	PlayerName  string `json:"player_name"`
	TotalRounds int    `json:"total_rounds"`
}

// CreateRoom handles POST /multiplayer/create_room
func (h *MultiplayerHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req MPCreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hostID, ok := parseUUID(req.HostID)
	if !ok {
		writeError(w, http.StatusBadRequest, "host_id is required and must be a valid UUID")
		return
	}

	room, err := h.rooms.Create(r.Context(), hostID, req.PlayerName, req.TotalRounds)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"room_id":   room.ID,
		"room_code": room.Code,
	})
}

// MPJoinRoomRequest is the request body for POST /multiplayer/join_room.
type MPJoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	UserID     string `json:"user_id"`
	PlayerName string `json:"player_name"`
}

// JoinRoom handles POST /multiplayer/join_room
func (h *MultiplayerHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var req MPJoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RoomCode == "" {
		writeError(w, http.StatusBadRequest, "room_code is required")
		return
	}
	userID, ok := parseUUID(req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}

	member, err := h.rooms.Join(r.Context(), req.RoomCode, userID, req.PlayerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"room_id": member.RoomID})
}

// SetEmojiRequest is the request body for POST /multiplayer/set_emoji.
type SetEmojiRequest struct {
	RoomID        string `json:"room_id"`
	HostID        string `json:"host_id"`
	EmojiClue     string `json:"emoji_clue"`
	CorrectAnswer string `json:"correct_answer"`
}

// SetEmoji handles POST /multiplayer/set_emoji
func (h *MultiplayerHandler) SetEmoji(w http.ResponseWriter, r *http.Request) {
	var req SetEmojiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}
	if req.HostID == "" || req.EmojiClue == "" || req.CorrectAnswer == "" {
		writeError(w, http.StatusBadRequest, "host_id, emoji_clue, and correct_answer are required")
		return
	}

	turn, err := h.game.SetCustomPuzzle(r.Context(), roomID, req.HostID, req.EmojiClue, req.CorrectAnswer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Emoji puzzle set successfully!",
		"puzzle_id":    turn.PuzzleID,
		"current_turn": turn.CurrentTurn,
	})
}

// MPSubmitAnswerRequest is the request body for POST /multiplayer/submit_emoji_answer.
type MPSubmitAnswerRequest struct {
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	PuzzleID string `json:"puzzle_id"`
	Answer   string `json:"answer"`
}

// SubmitEmojiAnswer handles POST /multiplayer/submit_emoji_answer
func (h *MultiplayerHandler) SubmitEmojiAnswer(w http.ResponseWriter, r *http.Request) {
	var req MPSubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}
	userID, ok := parseUUID(req.UserID)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}
	if req.PuzzleID == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "puzzle_id and answer are required")
		return
	}

	result, err := h.game.SubmitAnswer(r.Context(), roomID, userID, req.PuzzleID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
