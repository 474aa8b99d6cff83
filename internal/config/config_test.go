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
http_port = 8085

[database]
host = "db"
port = 5432
user = "mentor"
password = "secret"
dbname = "mentorship"
auto_migrate = true

[logs]
level = "debug"

[profile_service]
url = "http://profiles:8080"
timeout = 3

[sessions]
pending_ttl_minutes = 20
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "mentor", cfg.Database.User)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 3, cfg.ProfileService.Timeout)
	assert.Equal(t, 7, cfg.Slots.WindowDays)
	assert.Equal(t, 20, cfg.Sessions.PendingTTLMinutes)
	assert.Equal(t, 60, cfg.Sessions.ExpireIntervalSeconds)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_ValidationFails(t *testing.T) {
	body := sampleConfig + "\n[slots]\nwindow_days = 90\n"

	_, err := Load(writeConfig(t, body))
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", c.DSN())
}
