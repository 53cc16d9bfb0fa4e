package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"facility-survey/internal/common/config"
	"facility-survey/internal/survey/repository"
	"facility-survey/internal/survey/storage"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// ============================================================
// Facility Survey Service
// ============================================================

func main() {
	var configFile string
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "surveyd",
		Short:         "Photo to floor plan geolocation service for facility surveys",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				log.Printf("Warning: Could not load .env file: %v", err)
			}
			if configFile == "" {
				configFile = os.Getenv("CONFIG_FILE")
			}

			var err error
			cfg, err = config.LoadFile(configFile)
			if err != nil {
				return err
			}
			if configFile != "" {
				log.Printf("Loaded config file: %s", configFile)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")

	rootCmd.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newImportCmd(&cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		color.Red(err.Error())
		os.Exit(1)
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (*repository.Repository, error) {
	db, err := repository.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	repo := repository.New(db)
	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("init db: %w", err)
	}
	return repo, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	return storage.New(ctx, storage.Options{
		Driver:     cfg.StorageDriver,
		LocalRoot:  cfg.StorageLocalRoot,
		PublicURL:  cfg.StoragePublicURL,
		S3Region:   cfg.S3Region,
		S3Bucket:   cfg.S3Bucket,
		S3Endpoint: cfg.S3Endpoint,
		S3Key:      cfg.S3AccessKey,
		S3Secret:   cfg.S3SecretKey,
		PresignTTL: cfg.S3PresignTTL,
	})
}
