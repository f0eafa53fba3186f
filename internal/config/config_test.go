package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://financialmodelingprep.com/api/v3", cfg.MarketData.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.MarketData.Timeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := `
server:
  port: 9090
marketdata:
  api_key: from-file
  timeout: 3s
database:
  driver: postgres
  dsn: postgres://localhost/watchlist
logger:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("MARKETDATA_API_KEY", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.MarketData.ApiKey)
	assert.Equal(t, 3*time.Second, cfg.MarketData.Timeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/watchlist", cfg.Database.DSN)
	assert.Equal(t, "json", cfg.Logger.Format)
}
