package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"stock-watchlist-go/internal/models"
)

// MaxSymbolLength is the width of the companies.symbol column.
const MaxSymbolLength = 10

// CompanyStore persists watchlist items.
type CompanyStore struct {
	db *gorm.DB
}

// NewCompanyStore creates a new CompanyStore.
func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func validateCompany(c *models.Company) error {
	c.Symbol = strings.TrimSpace(c.Symbol)
	switch {
	case c.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	case c.Symbol == "":
		return fmt.Errorf("%w: symbol is required", ErrInvalidItem)
	case len(c.Symbol) > MaxSymbolLength:
		return fmt.Errorf("%w: symbol %q exceeds %d characters", ErrInvalidItem, c.Symbol, MaxSymbolLength)
	case c.UserID == 0:
		return fmt.Errorf("%w: user id is required", ErrInvalidItem)
	case c.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidItem)
	}
	return nil
}

// Create inserts a new watchlist item. The id is chosen by the caller; the
// store only guarantees that no two rows share a symbol.
func (s *CompanyStore) Create(ctx context.Context, c *models.Company) error {
	if err := validateCompany(c); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Company
		err := tx.Where("symbol = ? OR id = ?", c.Symbol, c.ID).Limit(1).Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check existing item: %w", err)
		}
		if existing.ID != "" {
			if existing.Symbol == c.Symbol {
				return fmt.Errorf("%w: %s", ErrDuplicateSymbol, c.Symbol)
			}
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}

		return tx.Create(c).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateSymbol), errors.Is(err, ErrDuplicateID):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Lost a race with a concurrent insert of the same symbol.
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, c.Symbol)
	default:
		return fmt.Errorf("failed to create watchlist item: %w", err)
	}
}

// Delete removes the item with the given id. Deleting a missing id is not an error.
func (s *CompanyStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{}).Error; err != nil {
		return fmt.Errorf("failed to delete watchlist item %s: %w", id, err)
	}
	return nil
}

// Get returns the item with the given id.
func (s *CompanyStore) Get(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: watchlist item %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist item %s: %w", id, err)
	}
	return &c, nil
}

// List returns every item owned by the user, oldest first.
func (s *CompanyStore) List(ctx context.Context, userID uint) ([]models.Company, error) {
	companies := []models.Company{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist for user %d: %w", userID, err)
	}
	return companies, nil
}
