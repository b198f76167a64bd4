package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/container"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/database"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "devconnector",
	Short: "Developer social network API",
	Long: `Serves the users, profiles and posts API.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, err = logger.New(&cfg.Logging, cfg.Server.Env)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the postgres tables and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing application", zap.Error(err))
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serverErr
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.Storage.Type != config.StoragePostgres {
		return fmt.Errorf("migrate requires STORAGE_TYPE=%s", config.StoragePostgres)
	}

	db, err := database.NewPostgresDB(cmd.Context(), &cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return err
	}
	log.Info("schema applied")
	return nil
}
