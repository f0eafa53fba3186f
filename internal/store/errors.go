package store

import "errors"

var (
	// ErrDuplicateSymbol is returned when a watchlist item with the symbol already exists.
	ErrDuplicateSymbol = errors.New("symbol already on a watchlist")
	// ErrDuplicateID is returned when the caller reuses an item id for a different symbol.
	ErrDuplicateID = errors.New("item id already in use")
	// ErrInvalidItem is returned when a watchlist item fails validation before insert.
	ErrInvalidItem = errors.New("invalid watchlist item")
	// ErrInvalidUser is returned when a user record fails validation.
	ErrInvalidUser = errors.New("invalid user")
	// ErrNotFound is returned when a lookup by key has no match.
	ErrNotFound = errors.New("record not found")
)
