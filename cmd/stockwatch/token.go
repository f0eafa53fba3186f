package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stock-watchlist-go/internal/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "token <email>",
		Short: "Issue an access token signed with the configured JWT secret (development only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.NewVerifier(&a.cfg.Auth).IssueToken(args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name to put in the token's user metadata")
	return cmd
}
