package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/app"
	"github.com/jekabolt/grbpwr-analytics/config"
	"github.com/jekabolt/grbpwr-analytics/internal/auth/jwt"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/jekabolt/grbpwr-analytics/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load a config %v", err.Error())
	}
	slog.SetDefault(log.New(cfg.Logger, os.Stdout))
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.Default()

	a := app.New(cfg)
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("cannot start the application %v", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	select {
	case s := <-sigCh:
		logger.With("signal", s.String()).Warn("signal received, exiting")
		stopCtx, stop := context.WithTimeout(ctx, shutdownTimeout)
		defer stop()
		a.Stop(stopCtx)
		logger.Info("application exited")
	case <-a.Done():
		logger.Error("application exited")
	}

	return nil
}

func migrateDB(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.DB.Automigrate = true
	db, err := store.New(cmd.Context(), cfg.DB)
	if err != nil {
		return fmt.Errorf("cannot migrate the record store: %w", err)
	}
	db.Close()
	return nil
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HTTP.JWTSecret == "" {
		return fmt.Errorf("http.jwt_secret is not configured")
	}
	ttl, err := time.ParseDuration(tokenTTL)
	if err != nil {
		return fmt.Errorf("bad ttl %q: %w", tokenTTL, err)
	}
	tok, err := jwt.NewToken(jwt.New(cfg.HTTP.JWTSecret), ttl, subject)
	if err != nil {
		return fmt.Errorf("cannot issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
