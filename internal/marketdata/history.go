package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stock-watchlist-go/internal/models"
)

// HistoryWindow is the number of trading days returned by History.
const HistoryWindow = 30

const dateLayout = "2006-01-02"

type historicalResponse struct {
	Symbol     string          `json:"symbol"`
	Historical []historicalBar `json:"historical"`
}

type historicalBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// History returns the most recent HistoryWindow daily bars for symbol, oldest first.
func (c *Client) History(ctx context.Context, symbol string) ([]models.OHLCBar, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/historical-price-full/{symbol}", c.client.R().SetPathParam("symbol", symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", symbol, err)
	}

	var resp historicalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: history for %s: %w", ErrMalformedResponse, symbol, err)
	}
	if len(resp.Historical) == 0 {
		return nil, fmt.Errorf("%w: no historical data received for %s", ErrMalformedResponse, symbol)
	}

	series := make([]models.OHLCBar, 0, len(resp.Historical))
	for _, b := range resp.Historical {
		date, err := time.Parse(dateLayout, b.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q for %s", ErrMalformedResponse, b.Date, symbol)
		}
		series = append(series, models.OHLCBar{
			Date:   date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	return LatestBars(series, HistoryWindow), nil
}

// LatestBars takes the first n entries of a newest-first series and returns
// them oldest first. The input is not modified.
func LatestBars(newestFirst []models.OHLCBar, n int) []models.OHLCBar {
	if n > len(newestFirst) {
		n = len(newestFirst)
	}
	out := make([]models.OHLCBar, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = newestFirst[i]
	}
	return out
}
