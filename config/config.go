package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Optional: logout revocation and rate
	// limiting degrade gracefully when no Redis is configured.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// External session verifier. The frontend's OAuth broker hands out a
	// session_id that /auth/session exchanges against this endpoint.
	SessionVerifyURL string

	// Storage configuration
	StorageDriver string // "local" or "s3"
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3PublicRead  bool
	AWSRegion     string

	// CORS
	CORSOrigins []string
}

const defaultSessionVerifyURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

// LoadConfig creates a new Config instance from environment variables.
// A .env file in the working directory is honored if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "jamaney"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SessionVerifyURL: getEnv("SESSION_VERIFY_URL", defaultSessionVerifyURL),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		S3PublicRead:  getEnv("S3_PUBLIC_READ", "true") == "true",
		AWSRegion:     os.Getenv("AWS_REGION"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisConfigured reports whether any Redis endpoint was provided.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
