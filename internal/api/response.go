package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/marketdata"
	"stock-watchlist-go/internal/store"
	"stock-watchlist-go/internal/watchlist"
)

// Error codes
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeMalformedResponse   = "MALFORMED_RESPONSE"
	CodeDuplicateSymbol     = "DUPLICATE_SYMBOL"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeStaleResponse       = "STALE_RESPONSE"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeInternalServer      = "INTERNAL_SERVER_ERROR"
)

// errBadRequest marks request bodies and parameters the handlers reject themselves.
var errBadRequest = errors.New("bad request")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// errorStatus maps a domain error to its HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, marketdata.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidItem),
		errors.Is(err, store.ErrInvalidUser):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, watchlist.ErrNotOwner):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, store.ErrDuplicateSymbol), errors.Is(err, store.ErrDuplicateID):
		return http.StatusConflict, CodeDuplicateSymbol
	case errors.Is(err, watchlist.ErrStaleResponse):
		return http.StatusConflict, CodeStaleResponse
	case errors.Is(err, marketdata.ErrUpstreamUnavailable):
		return http.StatusInternalServerError, CodeUpstreamUnavailable
	case errors.Is(err, marketdata.ErrMalformedResponse):
		return http.StatusInternalServerError, CodeMalformedResponse
	default:
		return http.StatusInternalServerError, CodeInternalServer
	}
}

// fail writes the error response for err. Unclassified errors are logged and
// their message is not sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if code == CodeInternalServer {
		h.logger.Error("Request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = "Internal server error"
	}
	writeError(w, r, status, code, message)
}
