package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment driven process configuration. Values are read
// once at startup and never change for the lifetime of the process.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	AdminPassword string
	PublicDir     string
	UploadURL     string
	GinMode       string
	LogLevel      string
	LogPath       string
}

// Load reads configuration from the environment, consulting a .env file if
// one is present. MONGODB_URI and ADMIN_PASSWORD have no safe defaults and
// must be provided.
func Load() (Config, error) {
	// Best effort; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "5000"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		DBName:        getenv("DB_NAME", "baeci_store"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		PublicDir:     getenv("PUBLIC_DIR", "public"),
		UploadURL:     getenv("UPLOAD_ENDPOINT", "https://vydrive.zone.id/upload"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogPath:       os.Getenv("LOG_PATH"),
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI must be set")
	}
	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
