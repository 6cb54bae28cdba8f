package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	DatabaseName  string
	ServerPort    string
	JWTSecret     string
	JWTExpiry     time.Duration
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		DatabaseName:  os.Getenv("MONGO_DATABASE"),
		ServerPort:    os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = "stratplan"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8081"
	}

	cfg.JWTExpiry = 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRY_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.JWTExpiry = time.Duration(hours) * time.Hour
		}
	}

	return cfg
}
