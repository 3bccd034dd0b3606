package config

import (
	"os"
	"strconv"
	"time"

	"todo_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	SessionSecret string

	// Session lifetime is fixed from issuance; a token used inside the
	// refresh window gets replaced with a fresh one.
	SessionLifetime      time.Duration
	SessionRefreshWindow time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Fixed-window rate limits, requests per window.
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env honored when present)
// and exits on missing required values.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Fatal("SESSION_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          dbURL,
		SessionSecret:        sessionSecret,
		SessionLifetime:      time.Duration(getEnvInt("SESSION_LIFETIME_HOURS", 168)) * time.Hour,
		SessionRefreshWindow: time.Duration(getEnvInt("SESSION_REFRESH_HOURS", 24)) * time.Hour,
		RedisAddr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		APIRateLimit:         getEnvInt("API_RATE_LIMIT", 60),
		APIRateWindow:        time.Duration(getEnvInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		AuthRateLimit:        getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:       time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		logger.Warn("invalid integer in env, using default", "key", key, "value", v)
	}
	return defaultVal
}
