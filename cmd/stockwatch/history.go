package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stock-watchlist-go/internal/chart"
	"stock-watchlist-go/internal/marketdata"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asChart bool

	cmd := &cobra.Command{
		Use:   "history <symbol>",
		Short: "Print the last 30 daily bars of a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := marketdata.NewClient(&a.cfg.MarketData, a.log)

			bars, err := client.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asChart {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(chart.Candlestick(strings.ToUpper(args[0]), bars))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DATE\tOPEN\tHIGH\tLOW\tCLOSE\t")
			for _, b := range bars {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n", b.Date.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asChart, "chart", false, "print the candlestick chart description as JSON")
	return cmd
}
