package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stock-watchlist-go/internal/config"
	"stock-watchlist-go/internal/database"
	"stock-watchlist-go/internal/models"
)

// setupTestDB returns a fresh, migrated in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(&config.Database{Driver: "sqlite", DSN: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	return db
}

func newItem(symbol string, userID uint, price string) *models.Company {
	return &models.Company{
		ID:          uuid.NewString(),
		UserID:      userID,
		Symbol:      symbol,
		CompanyName: symbol + " Inc.",
		Price:       decimal.RequireFromString(price),
	}
}
