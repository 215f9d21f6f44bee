package handler

import (
	"encoding/json"
	"net/http"

	"emojiparty/internal/model"
	"emojiparty/internal/service"
	"emojiparty/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ChatHandler serves room chat. Clients poll get_messages.
type ChatHandler struct {
	chat *service.Chat
}

func NewChatHandler(chat *service.Chat) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// SendMessageRequest is the request body for POST /chat/send_message.
type SendMessageRequest struct {
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

// SendMessage handles POST /chat/send_message
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roomID, ok := parseUUID(req.RoomID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := h.chat.Send(r.Context(), roomID, identity.UserID, req.Message); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully!"})
}

// GetMessages handles GET /chat/get_messages/{room_id}
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseUUID(mux.Vars(r)["room_id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room_id format, must be a valid UUID")
		return
	}

	msgs, err := h.chat.Messages(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}
