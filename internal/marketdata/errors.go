package marketdata

import "errors"

var (
	// ErrInvalidInput is returned before any request is made when a query or symbol is blank.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable covers network failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("market data provider unavailable")
	// ErrMalformedResponse is returned when a response lacks the fields we need.
	ErrMalformedResponse = errors.New("malformed market data response")
)
