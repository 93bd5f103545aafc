package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	UploadDir            string
	MaxUploadSize        int64
	AllowedDocumentTypes []string

	JWTSecret     string
	TokenLifetime time.Duration

	GinMode    string
	ListenAddr string
}

func Load() *Config {
	// A missing .env file is fine, plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "esign"),
		DBPassword: getEnv("DB_PASSWORD", "esign"),
		DBName:     getEnv("DB_NAME", "e_signature"),
		DBPath:     getEnv("DB_PATH", "e_signature.db"),

		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:        getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		AllowedDocumentTypes: getEnvList("ALLOWED_DOCUMENT_TYPES", []string{".pdf", ".png", ".jpg", ".jpeg"}),

		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenLifetime: getEnvDuration("TOKEN_LIFETIME", 24*time.Hour),

		GinMode:    getEnv("GIN_MODE", "debug"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
