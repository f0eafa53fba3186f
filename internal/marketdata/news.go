package marketdata

import (
	"context"
	"encoding/json"
	"fmt"

	"stock-watchlist-go/internal/models"
)

// NewsPageSize is the number of articles shown on the dashboard.
const NewsPageSize = 5

type articlesResponse struct {
	Content []models.Article `json:"content"`
}

// Articles returns the latest market news articles.
func (c *Client) Articles(ctx context.Context) ([]models.Article, error) {
	req := c.client.R().SetQueryParams(map[string]string{
		"page": "0",
		"size": fmt.Sprint(NewsPageSize),
	})

	body, err := c.get(ctx, "/fmp/articles", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}

	var resp articlesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: articles: %w", ErrMalformedResponse, err)
	}
	if resp.Content == nil {
		return []models.Article{}, nil
	}
	return resp.Content, nil
}

// Profile returns the company profile for symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/profile/{symbol}", c.client.R().SetPathParam("symbol", symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", symbol, err)
	}

	var profiles []models.CompanyProfile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("%w: profile for %s: %w", ErrMalformedResponse, symbol, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no profile returned for %s", ErrMalformedResponse, symbol)
	}
	return &profiles[0], nil
}
