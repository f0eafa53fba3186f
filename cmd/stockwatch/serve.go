package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/api"
	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/database"
	"stock-watchlist-go/internal/marketdata"
	"stock-watchlist-go/internal/store"
	"stock-watchlist-go/internal/watchlist"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	log := a.log

	db, err := database.NewDatabase(&a.cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("Database connection successful and schema migrated.", zap.String("driver", a.cfg.Database.Driver))

	if a.cfg.Auth.JWTSecret == "" {
		log.Warn("No JWT secret configured; every API request will be rejected")
	}

	users := store.NewUserStore(db)
	items := store.NewCompanyStore(db)
	market := marketdata.NewClient(&a.cfg.MarketData, log)
	svc := watchlist.NewService(market, items, log)

	authenticator := auth.NewAuthenticator(auth.NewVerifier(&a.cfg.Auth), users, log)
	router := api.NewRouter(&a.cfg.Server, api.NewHandler(svc, users, log), authenticator, log)
	server := api.NewServer(&a.cfg.Server, router, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := server.Start()
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received, gracefully shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server", zap.Error(err))
		return err
	}

	log.Info("Server has been shut down.")
	return nil
}
