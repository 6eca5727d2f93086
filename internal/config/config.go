package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// Blob storage for generated invoice documents.
	BlobBackend string // "s3" or "local"
	S3Bucket    string
	S3Region    string
	BlobDir     string // local backend only
	BaseURL     string // public URL prefix for locally stored documents
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:wealthware.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.BlobBackend = getEnv("BLOB_BACKEND", "local")
	cfg.S3Bucket = getEnv("S3_BUCKET", "")
	cfg.S3Region = getEnv("S3_REGION", "ap-south-1")
	cfg.BlobDir = getEnv("BLOB_DIR", "data/documents")
	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:"+cfg.Port)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
