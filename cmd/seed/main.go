package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"emojiparty/internal/config"
	"emojiparty/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(cfg.MongoDB).Collection("emoji_puzzles")

	genres := map[string][]struct {
		clue   string
		answer string
	}{
		"movies": {
			{"🦁👑", "The Lion King"},
			{"🕷️🧑", "Spider-Man"},
			{"🚢🧊💔", "Titanic"},
			{"🧙‍♂️💍🌋", "The Lord of the Rings"},
			{"🦖🏝️", "Jurassic Park"},
		},
		"places": {
			{"🗼🥐", "Paris"},
			{"🗽🍎", "New York"},
			{"🏛️🍕", "Rome"},
			{"🏯🍣", "Tokyo"},
			{"🕌🐪", "Cairo"},
		},
		"songs": {
			{"💃🌧️", "Singing in the Rain"},
			{"👶🦈", "Baby Shark"},
			{"🌈🎵", "Over the Rainbow"},
			{"🔔🎄", "Jingle Bells"},
			{"🧊🧊👶", "Ice Ice Baby"},
		},
	}

	total := 0
	for genre, puzzles := range genres {
		for i, p := range puzzles {
			puzzle := model.Puzzle{
				ID:            uuid.New().String(),
				Genre:         genre,
				LevelNumber:   i + 1,
				EmojiClue:     p.clue,
				CorrectAnswer: p.answer,
			}
			filter := bson.M{"genre": genre, "level_number": puzzle.LevelNumber}
			update := bson.M{"$setOnInsert": puzzle}
			res, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
			if err != nil {
				log.Fatalf("Failed to seed puzzle %s/%d: %v", genre, puzzle.LevelNumber, err)
			}
			if res.UpsertedCount > 0 {
				total++
			}
		}
	}

	fmt.Printf("Seeded %d new puzzles\n", total)
}
