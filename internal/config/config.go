// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"places-bot/internal/domain"
	"places-bot/internal/geocoding"
	"places-bot/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	TelegramToken string
	DataDir       string
	OpsAddr       string
	LogLevel      string
	DB            db.Config
	Geocoder      GeocoderConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Map           MapConfig
}

// GeocoderConfig configures address resolution.
type GeocoderConfig struct {
	URL         string
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	Backoff     string
	Mode        geocoding.Mode
}

// Retry delay policies for GEOCODER_BACKOFF. RetryDelay is the fixed delay
// for BackoffConstant and the initial interval for BackoffExponential.
const (
	BackoffConstant    = "constant"
	BackoffExponential = "exponential"
)

// RedisConfig configures the optional geocode cache. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a cache is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig configures place event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers        []string
	Topic          string
	PublishTimeout time.Duration
}

// Enabled reports whether publishing is configured.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// MapConfig configures map rendering.
type MapConfig struct {
	TempDir string
	Center  domain.Coordinates
	Zoom    int
}

// LoadConfig loads configuration from environment variables, after merging
// a .env file from the working directory when one exists. Variables already
// set in the environment win over the file.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	var err error
	cfg := &AppConfig{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DataDir:       getEnv("DATA_DIR", "data"),
		OpsAddr:       getEnv("OPS_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	cfg.DB.Driver = getEnv("DB_DRIVER", db.DriverSQLite)
	if _, err = db.DialectForDriver(cfg.DB.Driver); err != nil {
		return nil, fmt.Errorf("invalid DB_DRIVER: %w", err)
	}
	cfg.DB.DSN = os.Getenv("DB_DSN")
	if cfg.DB.DSN == "" {
		if cfg.DB.Driver != db.DriverSQLite {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.DB.Driver)
		}
		cfg.DB.DSN = filepath.Join(cfg.DataDir, "places.db")
	}

	cfg.Geocoder.URL = getEnv("GEOCODER_URL", geocoding.DefaultNominatimURL)
	cfg.Geocoder.UserAgent = getEnv("GEOCODER_USER_AGENT", "places-bot")
	if cfg.Geocoder.Timeout, err = getDuration("GEOCODER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Geocoder.MaxAttempts, err = getInt("GEOCODER_MAX_ATTEMPTS", geocoding.DefaultMaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Geocoder.MaxAttempts < 1 {
		return nil, fmt.Errorf("invalid GEOCODER_MAX_ATTEMPTS: must be at least 1")
	}
	if cfg.Geocoder.RetryDelay, err = getDuration("GEOCODER_RETRY_DELAY", time.Second); err != nil {
		return nil, err
	}
	switch cfg.Geocoder.Backoff = strings.ToLower(getEnv("GEOCODER_BACKOFF", BackoffConstant)); cfg.Geocoder.Backoff {
	case BackoffConstant, BackoffExponential:
	default:
		return nil, fmt.Errorf("invalid GEOCODER_BACKOFF %q: want %s or %s", cfg.Geocoder.Backoff, BackoffConstant, BackoffExponential)
	}
	if cfg.Geocoder.Mode, err = geocoding.ParseMode(os.Getenv("GEOCODER_MODE")); err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_MODE: %w", err)
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.TTL, err = getDuration("GEOCODE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.Topic = getEnv("KAFKA_PLACES_TOPIC", "places.saved")
	if cfg.Kafka.PublishTimeout, err = getDuration("KAFKA_PUBLISH_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.Kafka.PublishTimeout == 0 {
		return nil, fmt.Errorf("invalid KAFKA_PUBLISH_TIMEOUT: must be positive")
	}

	cfg.Map.TempDir = os.Getenv("MAP_TMP_DIR")
	if cfg.Map.Center, err = parseCenter(getEnv("MAP_DEFAULT_CENTER", "55.7558,37.6173")); err != nil {
		return nil, err
	}
	if cfg.Map.Zoom, err = getInt("MAP_DEFAULT_ZOOM", 10); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseCenter reads "lat,lon".
func parseCenter(v string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(v, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("invalid MAP_DEFAULT_CENTER %q: want lat,lon", v)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Coordinates{}, fmt.Errorf("invalid MAP_DEFAULT_CENTER latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return domain.Coordinates{}, fmt.Errorf("invalid MAP_DEFAULT_CENTER longitude %q", lonStr)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
