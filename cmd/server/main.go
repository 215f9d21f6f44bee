package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emojiparty/internal/cache"
	"emojiparty/internal/config"
	"emojiparty/internal/repository"
	"emojiparty/internal/service"
	"emojiparty/internal/transport/rest"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Repositories
	roomRepo := repository.NewRoomRepo(db)
	rosterRepo := repository.NewRosterRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	puzzleRepo := repository.NewPuzzleRepo(db)
	leaderboardRepo := repository.NewLeaderboardRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	chatRepo := repository.NewChatRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Caches
	roomCache := cache.NewRoomCache(rdb)
	leaderboardCache := cache.NewLeaderboardCache(rdb)

	// Services
	authSvc := service.NewAuth(userRepo, cfg)
	roomsSvc := service.NewRooms(roomRepo, rosterRepo, sessionRepo, chatRepo, roomCache, cfg.DefaultRounds)
	catalogSvc := service.NewCatalog(puzzleRepo, progressRepo)
	leaderboardSvc := service.NewLeaderboard(leaderboardRepo, leaderboardCache)
	gameSvc := service.NewGame(roomRepo, rosterRepo, sessionRepo, puzzleRepo, catalogSvc, leaderboardSvc,
		time.Duration(cfg.TurnSeconds)*time.Second)
	soloSvc := service.NewSingleplayer(catalogSvc, progressRepo, leaderboardSvc)
	chatSvc := service.NewChat(roomRepo, chatRepo)

	container := &rest.Container{
		Auth:         authSvc,
		Rooms:        roomsSvc,
		Game:         gameSvc,
		Catalog:      catalogSvc,
		Singleplayer: soloSvc,
		Leaderboard:  leaderboardSvc,
		Chat:         chatSvc,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: rest.NewRouter(container),
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
