// Command migrate copies relational fleet records into the JSON document store.
// Runs are versioned, so repeating a completed run is a no-op.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/internal/app"
	"github.com/aquaalert/aquaalert/internal/database"
	"github.com/aquaalert/aquaalert/internal/services"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet("aquaalert-migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath, envFile string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")
	fs.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before configuration")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel, cfg.Server.LogFormat); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("migrate")

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, database.Close(db))
	}()

	store, err := app.OpenDocumentStore(ctx, cfg)
	if err != nil {
		return err
	}

	job, err := services.NewMigrationService(db, store)
	if err != nil {
		return err
	}

	result, err := job.Run(ctx)
	if result != nil {
		report(log, result)
	}
	return err
}

func report(log *zap.Logger, result *services.MigrationResult) {
	if result.Skipped {
		log.Info("nothing to do", zap.String("version", result.Version))
		return
	}

	collections := make([]string, 0, len(result.Copied))
	for name := range result.Copied {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	for _, name := range collections {
		log.Info("migrated",
			zap.String("collection", name),
			zap.Int("copied", result.Copied[name]),
			zap.Int("already_present", result.Existed[name]),
		)
	}
}

func loadConfig(path string) (*app.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return app.LoadConfig()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}
	if info.IsDir() {
		return app.LoadConfig(path)
	}
	return app.LoadConfig(filepath.Dir(path))
}
