package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8081"
  mode: debug
database:
  driver: mysql
  mysql:
    host: db
    port: 3307
    dbname: quiz
jwt:
  secret: test-secret
  expire_hours: 2
quiz:
  max_per_track: 20
redis:
  enabled: true
  cache_ttl_seconds: 30
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.MySQL.Host)
	assert.Equal(t, 3307, cfg.Database.MySQL.Port)
	assert.Equal(t, "quiz", cfg.Database.MySQL.DBName)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 20, cfg.Quiz.MaxPerTrack)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 50, cfg.Quiz.MaxPerTrack)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.FallbackModel)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "quiz.events", cfg.Events.Exchange)
	assert.Equal(t, "logs/edutech.log", cfg.Log.File)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo:27017/other")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo:27017/other", cfg.Database.Mongo.URI)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_NonPositiveMaxPerTrack(t *testing.T) {
	dir := writeConfig(t, "quiz:\n  max_per_track: 0\n")
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Quiz.MaxPerTrack)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\n")
	_, err := LoadConfig(dir)
	assert.Error(t, err)

	dir = writeConfig(t, "server:\n  mode: release\njwt:\n  secret: 0123456789abcdef0123456789abcdef\n")
	_, err = LoadConfig(dir)
	assert.NoError(t, err)
}
