package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-watchlist-go/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		log, err := NewLogger("debug", "json")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := NewLogger("loud", "console")
		assert.Error(t, err)
	})
}

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(config.Logger{Level: "info", Format: "json", File: path, MaxSizeMB: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	log.Info("watchlist item created")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "watchlist item created")
}
