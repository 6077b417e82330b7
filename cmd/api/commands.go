package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volunteer-match/internal/repository"
	"volunteer-match/internal/service/seed"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := repository.Migrate(cmd.Context(), db)
			if err != nil {
				log.Error("migration failed", zap.Error(err))
				return err
			}
			if len(applied) == 0 {
				log.Info("schema is up to date")
				return nil
			}
			log.Info("migrations applied", zap.Strings("files", applied))
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert reference states and demo volunteers and events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			ds, err := loadDataset(file)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if migrate {
				if _, err := repository.Migrate(cmd.Context(), db); err != nil {
					log.Error("migration failed", zap.Error(err))
					return err
				}
			}

			repos := repository.NewRepositories(db)
			report, err := seed.NewService(db, repos, log.Named("seed")).Seed(cmd.Context(), ds)
			if err != nil {
				log.Error("seed failed", zap.Error(err))
				return err
			}

			log.Info("seed complete",
				zap.Int("states", report.States),
				zap.Int("volunteers", report.Volunteers),
				zap.Int("events", report.Events),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML dataset to load instead of the built-in demo data")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations first")
	return cmd
}

func loadDataset(path string) (*seed.Dataset, error) {
	if path == "" {
		return seed.DefaultDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return seed.ParseDataset(data)
}
