package config

import (
	"delivery-zone-service/internal/domain"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default delivery zone: the store the page was built around.
const (
	DefaultZoneLat          = 13.8145263
	DefaultZoneLng          = 100.04178689
	DefaultZoneRadiusMeters = 1000.0
)

// Config holds all application configuration.
type Config struct {
	Port string

	// StoreDirectoryBaseURL is the remote directory sessions load pins from.
	// Empty means sessions read the local store repository.
	StoreDirectoryBaseURL string
	StoreFetchTimeout     time.Duration

	DatabaseURL string // PostgreSQL; empty selects SQLite at DBPath
	DBPath      string
	SeedPath    string

	Zone domain.DeliveryZone

	RedisURL      string
	StoreCacheTTL time.Duration

	SessionIdleTTL    time.Duration
	CORSAllowedOrigin string
}

// LoadDotEnv loads a .env file when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads configuration from environment variables with defaults.
// Malformed numbers or durations and an invalid delivery zone are errors.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  Get("PORT", "8080"),
		StoreDirectoryBaseURL: strings.TrimSpace(os.Getenv("STORE_DIRECTORY_BASE_URL")),
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBPath:                Get("DB_PATH", "data/stores.db"),
		SeedPath:              Get("SEED_PATH", "data/seeds/stores.json"),
		RedisURL:              strings.TrimSpace(os.Getenv("REDIS_URL")),
		CORSAllowedOrigin:     Get("CORS_ALLOWED_ORIGIN", "*"),
	}

	var err error
	if cfg.StoreFetchTimeout, err = getDuration("STORE_FETCH_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.StoreCacheTTL, err = getDuration("STORE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getDuration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	lat, err := getFloat("DELIVERY_ZONE_LAT", DefaultZoneLat)
	if err != nil {
		return nil, err
	}
	lng, err := getFloat("DELIVERY_ZONE_LNG", DefaultZoneLng)
	if err != nil {
		return nil, err
	}
	radius, err := getFloat("DELIVERY_ZONE_RADIUS_METERS", DefaultZoneRadiusMeters)
	if err != nil {
		return nil, err
	}

	cfg.Zone, err = domain.NewDeliveryZone(domain.Coordinate{Lat: lat, Lng: lng}, radius)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: invalid number for %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("load config: invalid duration for %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

// String masks connection strings that may carry credentials.
func (c *Config) String() string {
	mask := func(s string) string {
		if s == "" {
			return "<unset>"
		}
		return "***"
	}
	return fmt.Sprintf(
		"Config{port=%s directory=%q db_url=%s db_path=%s redis=%s zone=(%v,%v r=%vm)}",
		c.Port, c.StoreDirectoryBaseURL, mask(c.DatabaseURL), c.DBPath, mask(c.RedisURL),
		c.Zone.Center.Lat, c.Zone.Center.Lng, c.Zone.RadiusMeters,
	)
}
