// Package watchlist implements the watchlist item lifecycle: search, select,
// quote, persist, render and delete.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/chart"
	"stock-watchlist-go/internal/marketdata"
	"stock-watchlist-go/internal/models"
	"stock-watchlist-go/internal/store"
)

// ItemStore persists watchlist items.
type ItemStore interface {
	Create(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, userID uint) ([]models.Company, error)
}

// NewItem is a request to add a symbol to a watchlist. Empty fields are
// filled in by Add: ID with a fresh UUID, UserID from the session and Price
// with a quote.
type NewItem struct {
	ID     string
	Symbol string
	Name   string
	Price  decimal.NullDecimal
	UserID uint
}

// History is the detail page payload for one symbol.
type History struct {
	Symbol string           `json:"symbol"`
	Bars   []models.OHLCBar `json:"bars"`
	Chart  chart.Spec       `json:"chart"`
}

// Service coordinates the market data client and the item store.
type Service struct {
	market marketdata.ClientInterface
	items  ItemStore
	logger *zap.Logger
}

// NewService creates a new Service.
func NewService(market marketdata.ClientInterface, items ItemStore, logger *zap.Logger) *Service {
	return &Service{
		market: market,
		items:  items,
		logger: logger.Named("watchlist"),
	}
}

// Search passes query to the symbol lookup.
func (s *Service) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	return s.market.Search(ctx, query)
}

// List returns the session user's items.
func (s *Service) List(ctx context.Context, sess auth.Session) ([]models.Company, error) {
	if sess.UserID == 0 {
		return nil, auth.ErrUnauthorized
	}
	return s.items.List(ctx, sess.UserID)
}

// Add persists a new item for the session user. A missing price is resolved
// with a quote first; nothing is written when that fails.
func (s *Service) Add(ctx context.Context, sess auth.Session, in NewItem) (*models.Company, error) {
	switch {
	case in.UserID == 0:
		in.UserID = sess.UserID
	case sess.UserID != 0 && in.UserID != sess.UserID:
		return nil, fmt.Errorf("%w: cannot add to the watchlist of user %d", ErrNotOwner, in.UserID)
	}

	if in.ID == "" {
		in.ID = uuid.NewString()
	} else if _, err := uuid.Parse(in.ID); err != nil {
		return nil, fmt.Errorf("%w: id %q is not a UUID", store.ErrInvalidItem, in.ID)
	}

	in.Symbol = strings.TrimSpace(in.Symbol)
	if in.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", marketdata.ErrInvalidInput)
	}

	if !in.Price.Valid {
		price, err := s.market.Quote(ctx, in.Symbol)
		if err != nil {
			return nil, err
		}
		in.Price = decimal.NewNullDecimal(price)
	}

	item := &models.Company{
		ID:          in.ID,
		UserID:      in.UserID,
		Symbol:      in.Symbol,
		CompanyName: in.Name,
		Price:       in.Price.Decimal,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Added watchlist item",
		zap.String("id", item.ID),
		zap.String("symbol", item.Symbol),
		zap.Uint("user_id", item.UserID),
		zap.String("price", item.Price.String()),
	)
	return item, nil
}

// Select adds a search candidate at its current quoted price.
func (s *Service) Select(ctx context.Context, sess auth.Session, symbol, name string) (*models.Company, error) {
	if sess.UserID == 0 {
		return nil, auth.ErrUnauthorized
	}
	return s.Add(ctx, sess, NewItem{Symbol: symbol, Name: name})
}

// Remove deletes an item owned by the session user. Removing an item that
// does not exist succeeds.
func (s *Service) Remove(ctx context.Context, sess auth.Session, id string) error {
	// Ids are UUIDs, so anything else cannot name a stored item.
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Debug("Ignoring delete of non-UUID id", zap.String("id", id))
		return nil
	}

	item, err := s.items.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Watchlist item already gone", zap.String("id", id))
		return nil
	}
	if err != nil {
		return err
	}
	if item.UserID != sess.UserID {
		return fmt.Errorf("%w: item %s", ErrNotOwner, id)
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Removed watchlist item", zap.String("id", id), zap.String("symbol", item.Symbol), zap.Uint("user_id", sess.UserID))
	return nil
}

// History fetches recent bars for symbol and the chart built from them.
func (s *Service) History(ctx context.Context, symbol string) (*History, error) {
	bars, err := s.market.History(ctx, symbol)
	if err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return &History{Symbol: symbol, Bars: bars, Chart: chart.Candlestick(symbol, bars)}, nil
}

// Profile fetches the company profile for symbol.
func (s *Service) Profile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	return s.market.Profile(ctx, symbol)
}

// News fetches the latest market articles.
func (s *Service) News(ctx context.Context) ([]models.Article, error) {
	return s.market.Articles(ctx)
}

// Board returns a new dashboard view of the session user. It starts in
// Loading; call Load to fill it from the store.
func (s *Service) Board(sess auth.Session) *Board {
	return newBoard(s, sess)
}
