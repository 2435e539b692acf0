// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places-bot/internal/domain"
	"places-bot/internal/geocoding"
	"places-bot/pkg/db"
)

var configKeys = []string{
	"TELEGRAM_TOKEN", "DATA_DIR", "OPS_ADDR", "LOG_LEVEL", "DB_DRIVER", "DB_DSN",
	"GEOCODER_URL", "GEOCODER_USER_AGENT", "GEOCODER_TIMEOUT", "GEOCODER_MAX_ATTEMPTS",
	"GEOCODER_RETRY_DELAY", "GEOCODER_BACKOFF", "GEOCODER_MODE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"GEOCODE_CACHE_TTL", "KAFKA_BROKERS", "KAFKA_PLACES_TOPIC", "KAFKA_PUBLISH_TIMEOUT", "MAP_TMP_DIR",
	"MAP_DEFAULT_CENTER", "MAP_DEFAULT_ZOOM",
}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.OpsAddr)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, filepath.Join("data", "places.db"), cfg.DB.DSN)
	assert.Equal(t, geocoding.DefaultNominatimURL, cfg.Geocoder.URL)
	assert.Equal(t, "places-bot", cfg.Geocoder.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 3, cfg.Geocoder.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Geocoder.RetryDelay)
	assert.Equal(t, BackoffConstant, cfg.Geocoder.Backoff)
	assert.Equal(t, geocoding.ModeCoordinates, cfg.Geocoder.Mode)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "places.saved", cfg.Kafka.Topic)
	assert.Equal(t, 2*time.Second, cfg.Kafka.PublishTimeout)
	assert.Equal(t, domain.Coordinates{Lat: 55.7558, Lon: 37.6173}, cfg.Map.Center)
	assert.Equal(t, 10, cfg.Map.Zoom)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/var/lib/places")
	t.Setenv("GEOCODER_MODE", "address")
	t.Setenv("GEOCODER_MAX_ATTEMPTS", "5")
	t.Setenv("GEOCODER_RETRY_DELAY", "250ms")
	t.Setenv("GEOCODER_BACKOFF", "Exponential")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_PUBLISH_TIMEOUT", "500ms")
	t.Setenv("MAP_DEFAULT_CENTER", "48.8566, 2.3522")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/var/lib/places", "places.db"), cfg.DB.DSN)
	assert.Equal(t, geocoding.ModeAddress, cfg.Geocoder.Mode)
	assert.Equal(t, 5, cfg.Geocoder.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Geocoder.RetryDelay)
	assert.Equal(t, BackoffExponential, cfg.Geocoder.Backoff)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.PublishTimeout)
	assert.Equal(t, domain.Coordinates{Lat: 48.8566, Lon: 2.3522}, cfg.Map.Center)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_DRIVER", "mysql"},
		{"GEOCODER_TIMEOUT", "soon"},
		{"GEOCODER_MAX_ATTEMPTS", "0"},
		{"GEOCODER_MAX_ATTEMPTS", "three"},
		{"GEOCODER_MODE", "fuzzy"},
		{"GEOCODER_BACKOFF", "jitter"},
		{"KAFKA_PUBLISH_TIMEOUT", "0s"},
		{"KAFKA_PUBLISH_TIMEOUT", "-1s"},
		{"MAP_DEFAULT_CENTER", "55.7"},
		{"MAP_DEFAULT_CENTER", "95,10"},
		{"MAP_DEFAULT_ZOOM", "near"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestPostgresRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "pgx")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even if empty.
	require.NoError(t, os.Unsetenv("OPS_ADDR"))
	require.NoError(t, os.Unsetenv("GEOCODER_MODE"))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPS_ADDR=:9090\nGEOCODER_MODE=address\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.Equal(t, geocoding.ModeAddress, cfg.Geocoder.Mode)
}
