package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-watchlist-go/internal/models"
)

// newestFirstSeries returns n daily bars ending on 2024-03-29, newest first,
// with Close set to the day's index from the oldest bar.
func newestFirstSeries(n int) []models.OHLCBar {
	last := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)
	bars := make([]models.OHLCBar, n)
	for i := range bars {
		bars[i] = models.OHLCBar{Date: last.AddDate(0, 0, -i), Close: float64(n - 1 - i)}
	}
	return bars
}

func historicalJSON(bars []models.OHLCBar) string {
	parts := make([]string, len(bars))
	for i, b := range bars {
		parts[i] = fmt.Sprintf(`{"date":%q,"open":%g,"high":%g,"low":%g,"close":%g,"volume":1000}`,
			b.Date.Format(dateLayout), b.Close-1, b.Close+1, b.Close-2, b.Close)
	}
	return `{"symbol":"AAPL","historical":[` + strings.Join(parts, ",") + `]}`
}

func TestLatestBars(t *testing.T) {
	series := newestFirstSeries(60)

	got := LatestBars(series, HistoryWindow)
	require.Len(t, got, HistoryWindow)

	// The 30 most recent days, oldest first.
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date))
	}
	assert.Equal(t, series[29].Date, got[0].Date)
	assert.Equal(t, series[0].Date, got[29].Date)
	assert.Equal(t, float64(30), got[0].Close)
	assert.Equal(t, float64(59), got[29].Close)

	// The input is left newest first.
	assert.True(t, series[0].Date.After(series[1].Date))
}

func TestLatestBars_ShortSeries(t *testing.T) {
	series := newestFirstSeries(3)

	got := LatestBars(series, HistoryWindow)
	require.Len(t, got, 3)
	assert.Equal(t, series[2].Date, got[0].Date)
	assert.Equal(t, series[0].Date, got[2].Date)
}

func TestHistory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		series := newestFirstSeries(60)
		c := setupTestServer(t, jsonHandler(t, "/historical-price-full/AAPL", historicalJSON(series)))

		bars, err := c.History(context.Background(), "AAPL")
		require.NoError(t, err)
		require.Len(t, bars, HistoryWindow)
		assert.Equal(t, series[29].Date, bars[0].Date)
		assert.Equal(t, series[0].Date, bars[29].Date)
		assert.Equal(t, float64(59), bars[29].Close)
		assert.Equal(t, float64(60), bars[29].High)
		assert.Equal(t, float64(1000), bars[29].Volume)
	})

	t.Run("MissingHistorical", func(t *testing.T) {
		c := setupTestServer(t, jsonHandler(t, "/historical-price-full/NOPE", `{}`))

		bars, err := c.History(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrMalformedResponse)
		assert.Nil(t, bars)
	})

	t.Run("EmptyHistorical", func(t *testing.T) {
		c := setupTestServer(t, jsonHandler(t, "/historical-price-full/NOPE", `{"symbol":"NOPE","historical":[]}`))

		_, err := c.History(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("BadDate", func(t *testing.T) {
		c := setupTestServer(t, jsonHandler(t, "/historical-price-full/AAPL", `{"historical":[{"date":"yesterday","open":1,"high":1,"low":1,"close":1}]}`))

		_, err := c.History(context.Background(), "AAPL")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("APIError", func(t *testing.T) {
		c := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		_, err := c.History(context.Background(), "AAPL")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}
