package handler

import (
	"encoding/json"
	"net/http"

	"emojiparty/internal/service"
	"emojiparty/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// GameHandler serves the authenticated multiplayer game endpoints.
type GameHandler struct {
	rooms   *service.Rooms
	game    *service.Game
	catalog *service.Catalog
}

func NewGameHandler(rooms *service.Rooms, game *service.Game, catalog *service.Catalog) *GameHandler {
	return &GameHandler{rooms: rooms, game: game, catalog: catalog}
}

// CreateRoomRequest is the request body for POST /game/create_room.
type CreateRoomRequest struct {
	TotalRounds int    `json:"total_rounds"`
	PlayerName  string `json:"player_name"`
}

// CreateRoom handles POST /game/create_room
func (h *GameHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req CreateRoomRequest
	if r.Body != nil {
		// Body is optional; defaults apply when absent.
		json.NewDecoder(r.Body).Decode(&req)
	}

	room, err := h.rooms.Create(r.Context(), identity.UserID, req.PlayerName, req.TotalRounds)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room_id":   room.ID,
		"room_code": room.Code,
		"message":   "Game room created successfully! First turn set to host.",
	})
}

// JoinRoomRequest is the request body for POST /game/join_room.
type JoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// JoinRoom handles POST /game/join_room
func (h *GameHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RoomCode == "" {
		writeError(w, http.StatusBadRequest, "room_code is required")
		return
	}

	member, err := h.rooms.Join(r.Context(), req.RoomCode, identity.UserID, req.PlayerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"room_id": member.RoomID,
		"message": "Joined room successfully!",
	})
}

// UpdateGameStateRequest is the request body for POST /game/update_game_state.
type UpdateGameStateRequest struct {
	RoomID   string         `json:"room_id"`
	NextTurn string         `json:"next_turn"`
	Scores   map[string]int `json:"scores"`
}

// UpdateGameState handles POST /game/update_game_state
func (h *GameHandler) UpdateGameState(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req UpdateGameStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}
	if req.NextTurn == "" {
		writeError(w, http.StatusBadRequest, "next_turn is required")
		return
	}

	if err := h.game.UpdateState(r.Context(), roomID, identity.UserID, req.NextTurn, req.Scores); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Game state updated successfully!"})
}

// GetGameState handles GET /game/get_game_state/{room_id}
func (h *GameHandler) GetGameState(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseUUID(mux.Vars(r)["room_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}

	session, err := h.game.State(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// GetTurnInfo handles GET /game/get_turn_info/{room_id}
func (h *GameHandler) GetTurnInfo(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseUUID(mux.Vars(r)["room_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}

	info, err := h.game.TurnInfo(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GetEmojiPuzzle handles GET /game/get_emoji_puzzle/{room_id}/{genre}
func (h *GameHandler) GetEmojiPuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	roomID, ok := parseUUID(vars["room_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}

	turn, err := h.game.StartTurn(r.Context(), roomID, vars["genre"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

// SubmitAnswerRequest is the request body for POST /game/submit_emoji_answer.
type SubmitAnswerRequest struct {
	RoomID   string `json:"room_id"`
	PuzzleID string `json:"puzzle_id"`
	Answer   string `json:"answer"`
}

// SubmitEmojiAnswer handles POST /game/submit_emoji_answer
func (h *GameHandler) SubmitEmojiAnswer(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}
	if req.PuzzleID == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "puzzle_id and answer are required")
		return
	}

	result, err := h.game.SubmitAnswer(r.Context(), roomID, identity.UserID, req.PuzzleID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetGenres handles GET /game/get_genres
func (h *GameHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.Genres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"genres": genres})
}

// EndGameRequest is the request body for POST /game/end_game.
type EndGameRequest struct {
	RoomID string `json:"room_id"`
}

// EndGame handles POST /game/end_game
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req EndGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}

	if err := h.rooms.End(r.Context(), roomID, identity.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Game ended and room purged."})
}
