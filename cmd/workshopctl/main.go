// Command workshopctl runs catalog imports and schema migrations outside the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/workshop-admin-api/internal/auth"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/repository"
	"github.com/workshop-admin-api/internal/service"
	"github.com/workshop-admin-api/internal/storage"
	"github.com/workshop-admin-api/pkg/logger"
)

var collectionID string

var rootCmd = &cobra.Command{
	Use:           "workshopctl",
	Short:         "Admin tasks for the workshop API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import the Shopify workshop collection and print the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		store, err := storage.New(cfg.Storage, log)
		if err != nil {
			return err
		}
		services := service.NewServices(repository.New(db), catalog.New(cfg.Shopify, log), store, cfg, log)

		id := collectionID
		if id == "" {
			id = cfg.Shopify.CollectionID
		}

		result, err := services.Sync.Run(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d product(s) failed to import", len(result.Errors))
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()
		return db.RunMigrations()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()
		return db.MigrateDown()
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		_, _, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()
		return db.MigrateToVersion(uint(version))
	},
}

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Print the bcrypt hash to set as AUTH_TOKEN_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&collectionID, "collection", "", "Shopify collection id (defaults to SHOPIFY_WORKSHOP_COLLECTION_ID)")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateGotoCmd)
	rootCmd.AddCommand(syncCmd, migrateCmd, hashTokenCmd)
}

// setup loads configuration and opens the database
func setup() (*config.Config, zerolog.Logger, *database.DB, error) {
	log := logger.NewWithWriter(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, log, nil, fmt.Errorf("load configuration: %w", err)
	}
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, log, db, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
