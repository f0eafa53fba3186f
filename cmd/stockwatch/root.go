package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/config"
	"stock-watchlist-go/internal/logger"
)

// app carries what every command needs once the root has loaded configuration.
type app struct {
	configDir string
	cfg       config.Config
	log       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "stockwatch",
		Short:        "Stock watchlist dashboard backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "./configs", "directory containing config.yml")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newLookupCmd(a),
		newHistoryCmd(a),
		newTokenCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	a.log = log
	a.log.Debug("Configuration loaded", zap.String("config_dir", a.configDir))
	return nil
}
