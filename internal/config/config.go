package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	HTTPPort           string
	LogLevel           string
	LogFile            string
	JWTSecret          string
	TokenTTL           time.Duration
	RedisAddr          string
	RedisPassword      string
	GeminiAPIKey       string
	RecentPromptsLimit int
}

var AppConfig Config

var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Load reads the environment (and an optional .env file) into a Config.
// It does not enforce serve-only requirements; see Validate.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Config{
		DatabaseURL:        getEnv("DATABASE_URL", "promptforge.db"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", "logs/promptforge.log"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		RecentPromptsLimit: getEnvAsInt("RECENT_PROMPTS_LIMIT", 5),
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.RecentPromptsLimit <= 0 {
		return errors.New("RECENT_PROMPTS_LIMIT must be positive")
	}
	return nil
}

func LoadConfig() {
	AppConfig = Load()
	if err := AppConfig.Validate(); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
