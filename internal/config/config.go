package config

import (
	"drone-flight-planner/internal/domain"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting shared by the binaries.
type Config struct {
	WebServerURL string
	DatabaseURL  string
	DBPath       string
	RedisAddr    string
	OutputDir    string
	SeedPath     string
	Port         string
	Base         domain.Position
	MaxMoves     int
}

// DefaultBase is the launch point used when BASE_LNG/BASE_LAT are unset.
var DefaultBase = domain.Position{Lng: -3.186874, Lat: 55.944494}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads a .env file if present and resolves the configuration from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		WebServerURL: Get("WEB_SERVER_URL", "http://localhost:9898"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		DBPath:       Get("DB_PATH", "data/app.db"),
		RedisAddr:    Get("REDIS_ADDR", ""),
		OutputDir:    Get("OUTPUT_DIR", "."),
		SeedPath:     Get("SEED_PATH", "data/seeds/orders.json"),
		Port:         Get("PORT", "8080"),
		Base:         DefaultBase,
		MaxMoves:     domain.MaxMoves,
	}

	var err error
	if cfg.Base.Lng, err = getFloat("BASE_LNG", DefaultBase.Lng); err != nil {
		return Config{}, err
	}
	if cfg.Base.Lat, err = getFloat("BASE_LAT", DefaultBase.Lat); err != nil {
		return Config{}, err
	}

	if v := Get("MAX_MOVES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: MAX_MOVES must be a positive integer, got %q", v)
		}
		cfg.MaxMoves = n
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a number, got %q: %w", key, v, err)
	}
	return f, nil
}
