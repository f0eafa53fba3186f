package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stock-watchlist-go/internal/models"
)

// MaxCandidates bounds the number of search results handed to callers.
const MaxCandidates = 20

// Search looks up symbols matching a free-text query. At most MaxCandidates
// results are returned; zero matches is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	body, err := c.get(ctx, "/search", c.client.R().SetQueryParam("query", query))
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}

	var results []models.Candidate
	if err := json.Unmarshal(body, &results); err != nil {
		// The provider reports quota and key errors as a JSON object.
		c.logger.Warn("Unexpected search response", zap.String("query", query), zap.ByteString("body", truncate(body)))
		return nil, fmt.Errorf("%w: failed to decode search results: %w", ErrUpstreamUnavailable, err)
	}

	if len(results) > MaxCandidates {
		results = results[:MaxCandidates]
	}
	if results == nil {
		results = []models.Candidate{}
	}
	return results, nil
}

func truncate(body []byte) []byte {
	const limit = 256
	if len(body) > limit {
		return body[:limit]
	}
	return body
}
