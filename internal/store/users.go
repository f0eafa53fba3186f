package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"stock-watchlist-go/internal/models"
)

// UserStore mirrors auth-provider identities into users_table.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the user with the given email or ErrNotFound.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	return &u, nil
}

// Ensure returns the user with the given email, creating it with the default
// plan on first authentication. created reports whether a row was inserted.
func (s *UserStore) Ensure(ctx context.Context, email, name string) (user *models.User, created bool, err error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", ErrInvalidUser)
	}

	existing, err := s.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	u := models.User{Name: name, Email: email, Plan: models.DefaultPlan, StripeID: models.DefaultStripeID}
	err = s.db.WithContext(ctx).Create(&u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent first login created the row between the select and the insert.
		found, err := s.FindByEmail(ctx, email)
		return found, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return &u, true, nil
}
