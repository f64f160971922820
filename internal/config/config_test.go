package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8081
debug = true

[database]
host = "db"
port = 5433
user = "booking"
dbname = "beauty"

[redis]
enabled = true
addr = "redis:6379"

[kafka]
enabled = true
brokers = ["kafka:9092"]

[booking]
timezone = "America/Bogota"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)

	// значения по умолчанию сохраняются
	assert.Equal(t, "appointment.created", cfg.Kafka.Topic)
	assert.Equal(t, "COP", cfg.Booking.Currency)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Contains(t, cfg.Database.DSN(), "dbname=beauty")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("WOMPI_PRIVATE_KEY", "prv_test_key")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "prv_test_key", cfg.Wompi.PrivateKey)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[booking]\ntimezone = \"Mars/Olympus\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "[kafka]\nenabled = true\nbrokers = []\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
