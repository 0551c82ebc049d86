package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/11shadownevermore11/Hackaton/internal/utils"
)

// Config holds all runtime configuration values. Every field has a default
// so the service starts with an empty environment; overrides come from env
// vars (a .env file is loaded in main).
type Config struct {
	Env        string        // application environment (dev/test/prod)
	Port       string        // HTTP port to listen on
	JWTSecret  string        // secret used to sign JWTs
	AccessTTL  time.Duration // access token time-to-live
	RefreshTTL time.Duration // refresh token time-to-live
	SessionTTL time.Duration // idle lifetime of anonymous voting sessions
	BcryptCost int           // bcrypt cost for password hashing
	MinRating  int           // lowest accepted rating value
	MaxRating  int           // highest accepted rating value
	UploadDir  string        // directory for uploaded location photos
}

// Load reads configuration from environment variables. When JWT_SECRET is
// unset a random per-process secret is generated: the service still works,
// but every issued token becomes unverifiable after a restart.
func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		s, err := utils.NewSecret()
		if err != nil {
			log.Fatalf("config: generate signing secret: %v", err)
		}
		secret = s
		log.Println("config: JWT_SECRET not set, using a per-process secret; tokens will not survive a restart")
	}
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "8000"),
		JWTSecret:  secret,
		AccessTTL:  envDur("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTTL: envDur("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		SessionTTL: envDur("SESSION_TTL", 24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 10),
		MinRating:  envInt("MIN_RATING", 1),
		MaxRating:  envInt("MAX_RATING", 5),
		UploadDir:  envStr("UPLOAD_DIR", "uploads"),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
