package rest

import (
	"net/http"
	"os"

	"emojiparty/internal/service"
	"emojiparty/internal/transport/rest/handler"
	"emojiparty/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	Auth         *service.Auth
	Rooms        *service.Rooms
	Game         *service.Game
	Catalog      *service.Catalog
	Singleplayer *service.Singleplayer
	Leaderboard  *service.Leaderboard
	Chat         *service.Chat
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.Auth)
	gameHandler := handler.NewGameHandler(c.Rooms, c.Game, c.Catalog)
	mpHandler := handler.NewMultiplayerHandler(c.Rooms, c.Game)
	spHandler := handler.NewSingleplayerHandler(c.Catalog, c.Singleplayer)
	lbHandler := handler.NewLeaderboardHandler(c.Leaderboard)
	chatHandler := handler.NewChatHandler(c.Chat)

	authMW := middleware.NewAuthMiddleware(c.Auth)

	r.Use(corsMiddleware)

	// Public auth routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated game routes
	game := r.PathPrefix("/game").Subrouter()
	game.HandleFunc("/get_genres", gameHandler.GetGenres).Methods("GET", "OPTIONS")
	protected := game.NewRoute().Subrouter()
	protected.Use(authMW.RequireUser)
	protected.HandleFunc("/create_room", gameHandler.CreateRoom).Methods("POST", "OPTIONS")
	protected.HandleFunc("/join_room", gameHandler.JoinRoom).Methods("POST", "OPTIONS")
	protected.HandleFunc("/update_game_state", gameHandler.UpdateGameState).Methods("POST", "OPTIONS")
	protected.HandleFunc("/get_game_state/{room_id}", gameHandler.GetGameState).Methods("GET", "OPTIONS")
	protected.HandleFunc("/get_turn_info/{room_id}", gameHandler.GetTurnInfo).Methods("GET", "OPTIONS")
	protected.HandleFunc("/get_emoji_puzzle/{room_id}/{genre}", gameHandler.GetEmojiPuzzle).Methods("GET", "OPTIONS")
	protected.HandleFunc("/submit_emoji_answer", gameHandler.SubmitEmojiAnswer).Methods("POST", "OPTIONS")
	protected.HandleFunc("/end_game", gameHandler.EndGame).Methods("POST", "OPTIONS")

	// Multiplayer variant: ids travel in request bodies
	mp := r.PathPrefix("/multiplayer").Subrouter()
	mp.HandleFunc("/create_room", mpHandler.CreateRoom).Methods("POST", "OPTIONS")
	mp.HandleFunc("/join_room", mpHandler.JoinRoom).Methods("POST", "OPTIONS")
	mp.HandleFunc("/set_emoji", mpHandler.SetEmoji).Methods("POST", "OPTIONS")
	mp.HandleFunc("/submit_emoji_answer", mpHandler.SubmitEmojiAnswer).Methods("POST", "OPTIONS")

	// Single-player
	sp := r.PathPrefix("/singleplayer").Subrouter()
	sp.HandleFunc("/get_genres", spHandler.GetGenres).Methods("GET", "OPTIONS")
	sp.HandleFunc("/get_score/{user_id}/{genre}", spHandler.GetScore).Methods("GET", "OPTIONS")
	sp.HandleFunc("/get_levels/{user_id}/{genre}", spHandler.GetLevels).Methods("GET", "OPTIONS")
	sp.HandleFunc("/submit_answer", spHandler.SubmitAnswer).Methods("POST", "OPTIONS")

	// Leaderboard
	r.HandleFunc("/leaderboard", lbHandler.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/leaderboard/top", lbHandler.Top).Methods("GET", "OPTIONS")
	r.HandleFunc("/leaderboard/rank/{user_id}", lbHandler.Rank).Methods("GET", "OPTIONS")
	lb := r.PathPrefix("/leaderboard").Subrouter()
	lbUser := lb.NewRoute().Subrouter()
	lbUser.Use(authMW.RequireUser)
	lbUser.HandleFunc("/submit_score", lbHandler.SubmitScore).Methods("POST", "OPTIONS")
	lbAdmin := lb.PathPrefix("/admin").Subrouter()
	lbAdmin.Use(authMW.RequireAdmin)
	lbAdmin.HandleFunc("/update_score", lbHandler.AdminUpdate).Methods("POST", "OPTIONS")
	lbAdmin.HandleFunc("/reset_user", lbHandler.AdminResetUser).Methods("POST", "OPTIONS")
	lbAdmin.HandleFunc("/reset_leaderboard", lbHandler.AdminReset).Methods("POST", "OPTIONS")

	// Chat
	chat := r.PathPrefix("/chat").Subrouter()
	chat.Use(authMW.RequireUser)
	chat.HandleFunc("/send_message", chatHandler.SendMessage).Methods("POST", "OPTIONS")
	chat.HandleFunc("/get_messages/{room_id}", chatHandler.GetMessages).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
