package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
server:
  host: "127.0.0.1"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "driveshare"
  password: "secret"
  database: "driveshare_test"
  ssl_mode: "disable"
sendgrid:
  from_email: "no-reply@driveshare.local"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
log:
  level: "debug"
  format: "text"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "/driveshare_test?sslmode=disable")

	// Policy defaults fill in when the file omits them.
	assert.Equal(t, int64(10), cfg.Booking.ServiceFeePercent)
	assert.Equal(t, 72, cfg.Booking.PendingTTLHours)
	assert.NotEmpty(t, cfg.Scheduler.ExpirePendingBookings)
	assert.NotEmpty(t, cfg.Scheduler.SendReturnReminders)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "fedcba9876543210fedcba9876543210")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "fedcba9876543210fedcba9876543210", cfg.JWT.Secret)
}

func TestLoad_RejectsShortJWTSecret(t *testing.T) {
	bad := `
server:
  host: "127.0.0.1"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "driveshare"
  database: "driveshare_test"
sendgrid:
  from_email: "no-reply@driveshare.local"
jwt:
  secret: "too-short"
`
	_, err := Load(writeConfig(t, bad))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
