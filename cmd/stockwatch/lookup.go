package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stock-watchlist-go/internal/marketdata"
)

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <query>",
		Short: "Search the market data provider for symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := marketdata.NewClient(&a.cfg.MarketData, a.log)

			candidates, err := client.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tEXCHANGE\tCURRENCY")
			for _, c := range candidates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Symbol, c.Name, c.ExchangeShortName, c.Currency)
			}
			return w.Flush()
		},
	}
}
