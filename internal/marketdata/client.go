package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/config"
	"stock-watchlist-go/internal/models"
)

const (
	defaultBaseURL = "https://financialmodelingprep.com/api/v3"
	defaultTimeout = 10 * time.Second
)

// ClientInterface defines the calls made to the market data provider.
type ClientInterface interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
	History(ctx context.Context, symbol string) ([]models.OHLCBar, error)
	Profile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
	Articles(ctx context.Context) ([]models.Article, error)
}

// Client is a client for the Financial Modeling Prep REST API.
// Every call is a single GET with a bounded timeout; nothing is retried.
type Client struct {
	client  *resty.Client
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new market data client.
func NewClient(cfg *config.MarketData, logger *zap.Logger) *Client {
	url := cfg.BaseURL
	if url == "" {
		url = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.ApiKey == "" {
		logger.Warn("No market data API key configured")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(url, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		client:  client,
		apiKey:  cfg.ApiKey,
		timeout: timeout,
		logger:  logger.Named("marketdata"),
	}
}

// get executes one GET request and returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, req *resty.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Executing request", zap.String("method", "GET"), zap.String("path", path))
	start := time.Now()

	resp, err := req.
		SetContext(ctx).
		SetQueryParam("apikey", c.apiKey).
		Get(path)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUpstreamUnavailable, path, err)
	}

	if resp.IsError() {
		c.logger.Warn("Request returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: GET %s: status %s", ErrUpstreamUnavailable, path, resp.Status())
	}

	c.logger.Debug("Request completed", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))
	return resp.Body(), nil
}

func requireSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	return symbol, nil
}
