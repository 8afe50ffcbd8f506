package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.RateWindow)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=:9000\nSTORAGE_DRIVER=badger\nCACHE_TTL=5s\nALLOWED_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(env), 0o644))
	t.Setenv("RATE_LIMIT", "7")
	t.Setenv("PORT", ":9100")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Port, "env overrides file")
	assert.Equal(t, "badger", cfg.StorageDriver)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 7, cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoadConfigRejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT", "0")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", cfg.PostgresDSN())
}
