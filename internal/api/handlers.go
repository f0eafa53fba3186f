package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/models"
	"stock-watchlist-go/internal/watchlist"
)

// UserFinder looks up local user records.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds dependencies for the API endpoints.
type Handler struct {
	svc    *watchlist.Service
	users  UserFinder
	logger *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *watchlist.Service, users UserFinder, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, users: users, logger: logger}
}

// ListResponse wraps list payloads.
type ListResponse[T any] struct {
	Response []T `json:"response"`
}

// CreateStockRequest is the body of POST /api/stocks.
type CreateStockRequest struct {
	ID          string              `json:"id"`
	Symbol      string              `json:"symbol"`
	Price       decimal.NullDecimal `json:"price"`
	CompanyName string              `json:"companyName"`
	UserID      uint                `json:"user_id"`
}

// SelectStockRequest is the body of POST /api/stocks/select.
type SelectStockRequest struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
}

// DeleteStockRequest is the body of DELETE /api/stocks.
type DeleteStockRequest struct {
	ID string `json:"id"`
}

// NewsResponse is the body of GET /api/news.
type NewsResponse struct {
	Articles []models.Article `json:"articles"`
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	return nil
}

// session returns the Session attached by Authenticate. Routes using it are
// always mounted behind that middleware.
func session(r *http.Request) auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AuthCallback returns the local user of the presented token, which the
// auth middleware has already created if needed.
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByEmail(r.Context(), session(r).Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUser returns the user with the email in the path.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", r.Method))
		return
	}

	user, err := h.users.FindByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Search returns up to 20 candidates for the query parameter.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "Query parameter is required")
		return
	}

	candidates, err := h.svc.Board(session(r)).Search(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[models.Candidate]{Response: candidates})
}

// ListStocks returns the session user's watchlist.
func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[models.Company]{Response: items})
}

// CreateStock persists a watchlist item. A missing price is quoted first.
func (h *Handler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var in CreateStockRequest
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.svc.Add(r.Context(), session(r), watchlist.NewItem{
		ID:     in.ID,
		Symbol: in.Symbol,
		Name:   in.CompanyName,
		Price:  in.Price,
		UserID: in.UserID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// SelectStock adds a search candidate at its current price.
func (h *Handler) SelectStock(w http.ResponseWriter, r *http.Request) {
	var in SelectStockRequest
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.svc.Board(session(r)).Select(r.Context(), in.Symbol, in.CompanyName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// DeleteStock removes the item whose id is in the body.
func (h *Handler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	var in DeleteStockRequest
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(in.ID) == "" {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "id is required")
		return
	}

	if err := h.svc.Board(session(r)).Delete(r.Context(), in.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Stock deleted successfully"})
}

// History returns the recent bars of a symbol with their candlestick chart.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.History(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[models.CompanyProfile]{Response: []models.CompanyProfile{*profile}})
}

func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.News(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewsResponse{Articles: articles})
}

// Dashboard loads the session user's board and returns its snapshot. A
// failed load still returns the snapshot, carrying the error.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	board := h.svc.Board(session(r))
	status := http.StatusOK
	if err := board.Load(r.Context()); err != nil {
		status, _ = errorStatus(err)
	}
	writeJSON(w, status, board.Snapshot())
}

// DashboardDelete loads the board, removes the item from the store and then
// from the loaded rows, and returns the resulting snapshot.
func (h *Handler) DashboardDelete(w http.ResponseWriter, r *http.Request) {
	board := h.svc.Board(session(r))
	if err := board.Load(r.Context()); err != nil {
		status, _ := errorStatus(err)
		writeJSON(w, status, board.Snapshot())
		return
	}

	status := http.StatusOK
	if err := board.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		status, _ = errorStatus(err)
	}
	writeJSON(w, status, board.Snapshot())
}
