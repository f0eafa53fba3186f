// Package chart builds chart descriptions consumed by the dashboard's
// charting library. Nothing here does I/O.
package chart

import (
	"strings"

	"stock-watchlist-go/internal/models"
)

const (
	candlestickHeight = 350
	candlestickID     = "candlestick-chart"
)

// Spec is a chart description in the shape the frontend charting library expects.
type Spec struct {
	Chart  Options  `json:"chart"`
	Title  Title    `json:"title"`
	XAxis  XAxis    `json:"xaxis"`
	YAxis  YAxis    `json:"yaxis"`
	Series []Series `json:"series"`
}

type Options struct {
	Type   string `json:"type"`
	Height int    `json:"height"`
	ID     string `json:"id"`
}

type Title struct {
	Text  string `json:"text"`
	Align string `json:"align"`
}

type XAxis struct {
	Type string `json:"type"`
}

type YAxis struct {
	Tooltip Tooltip `json:"tooltip"`
}

type Tooltip struct {
	Enabled bool `json:"enabled"`
}

type Series struct {
	Data []Point `json:"data"`
}

// Point is one candle: X is the bar date in unix milliseconds, Y is open, high, low, close.
type Point struct {
	X int64      `json:"x"`
	Y [4]float64 `json:"y"`
}

// Candlestick describes a candlestick chart of bars for symbol. Bars keep
// the order they are given in.
func Candlestick(symbol string, bars []models.OHLCBar) Spec {
	points := make([]Point, 0, len(bars))
	for _, b := range bars {
		points = append(points, Point{
			X: b.Date.UnixMilli(),
			Y: [4]float64{b.Open, b.High, b.Low, b.Close},
		})
	}

	return Spec{
		Chart:  Options{Type: "candlestick", Height: candlestickHeight, ID: candlestickID},
		Title:  Title{Text: strings.ToUpper(symbol) + " Stock Price Chart", Align: "left"},
		XAxis:  XAxis{Type: "datetime"},
		YAxis:  YAxis{Tooltip: Tooltip{Enabled: true}},
		Series: []Series{{Data: points}},
	}
}
