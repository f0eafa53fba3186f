package watchlist

import "errors"

var (
	// ErrNotOwner is returned when a session acts on another user's watchlist.
	ErrNotOwner = errors.New("watchlist item belongs to another user")
	// ErrStaleResponse is returned for a search that was superseded by a newer one.
	ErrStaleResponse = errors.New("search superseded by a newer request")
)
