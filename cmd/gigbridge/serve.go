package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gigbridge/gigbridge/internal/api"
	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/db"
	"github.com/gigbridge/gigbridge/internal/maintenance"
	"github.com/gigbridge/gigbridge/internal/notify"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the GigBridge API server",
		Long:  "Connects to the database, applies pending migrations and serves the HTTP API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gigbridge.yaml", "path to GigBridge config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required to serve")
	}

	gormDB, err := db.Connect(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Name, err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s at %s:%d\n", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	notifier, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}

	sweeper, err := maintenance.StartSweeper(gormDB, cfg.Maintenance.Schedule)
	if err != nil {
		return err
	}
	defer sweeper.Stop()

	var github *auth.GitHubAuthenticator
	if cfg.Auth.GitHubClient.ClientID != "" {
		github = auth.NewGitHubAuthenticator(cfg.Auth.GitHubClient)
		fmt.Fprintln(out, "GitHub login enabled")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.Start(ctx, api.StartOpts{
		DB:       gormDB,
		Port:     cfg.Server.Port,
		Issuer:   auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		GitHub:   github,
		Notifier: notifier,
		Out:      out,
	})
}
