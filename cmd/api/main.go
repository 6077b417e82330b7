package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volunteer-match/internal/config"
	"volunteer-match/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "api",
		Short:        "Volunteer to event matching API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, false)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (defaults to ./config.yaml when present)")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath),
	)
	return root
}

// bootstrap loads .env, configuration and the logger shared by every command.
func bootstrap(configPath string) (*config.Config, *zap.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	if envErr != nil {
		log.Debug("no .env file found, using environment variables")
	}
	return cfg, log, nil
}

// openDatabase connects for the one-shot commands, which need nothing else.
func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return config.NewPostgresDB(cfg)
}
