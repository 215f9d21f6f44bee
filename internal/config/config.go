package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	RedisURI string

	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string

	DefaultRounds int
	TurnSeconds   int
}

// Load reads .env (if present) and the environment, falling back to
// development defaults the same way the server always has.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "emojiparty"),
		RedisURI:      getenv("REDIS_URI", "localhost:6379"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:      getduration("TOKEN_TTL", 24*time.Hour),
		DefaultRounds: getint("DEFAULT_ROUNDS", 5),
		TurnSeconds:   getint("TURN_SECONDS", 30),
	}

	if admins := os.Getenv("ADMIN_EMAILS"); admins != "" {
		for _, e := range strings.Split(admins, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(e))
			}
		}
	}

	// go-redis wants host:port, but REDIS_URI is often a URL.
	cfg.RedisURI = strings.TrimPrefix(cfg.RedisURI, "redis://")

	return cfg
}

// IsAdminEmail reports whether an email gets the admin role at signup.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
	}
	return fallback
}
