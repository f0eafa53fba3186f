package marketdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type shortQuote struct {
	Symbol string              `json:"symbol"`
	Price  decimal.NullDecimal `json:"price"`
}

// Quote returns the current price of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return decimal.Zero, err
	}

	body, err := c.get(ctx, "/quote-short/{symbol}", c.client.R().SetPathParam("symbol", symbol))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}

	var quotes []shortQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return decimal.Zero, fmt.Errorf("%w: quote for %s: %w", ErrMalformedResponse, symbol, err)
	}
	if len(quotes) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no quote returned for %s", ErrMalformedResponse, symbol)
	}
	if !quotes[0].Price.Valid {
		return decimal.Zero, fmt.Errorf("%w: quote for %s has no price", ErrMalformedResponse, symbol)
	}

	return quotes[0].Price.Decimal, nil
}
