package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(&a.cfg.Database, a.log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			a.log.Info("Database schema migrated", zap.String("driver", a.cfg.Database.Driver))
			return nil
		},
	}
}
