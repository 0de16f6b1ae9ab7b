package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/database"
	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// OpenDatabase connects to the configured database and migrates the schema.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	dbCfg := databaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	logger.WithModule("database").Info("database connected", zap.String("driver", dbCfg.Driver))
	return db, nil
}

func databaseConfig(cfg *Config) database.Config {
	dbCfg := database.Config{
		Driver:   strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:     strings.TrimSpace(cfg.Database.Path),
		DSN:      strings.TrimSpace(cfg.Database.DSN),
		Host:     strings.TrimSpace(cfg.Database.Host),
		Port:     cfg.Database.Port,
		Name:     strings.TrimSpace(cfg.Database.Name),
		User:     strings.TrimSpace(cfg.Database.Username),
		Password: cfg.Database.Password,
		Options:  cfg.Database.Options,
	}

	switch dbCfg.Driver {
	case "", "sqlite", "sqlite3":
		dbCfg.Driver = "sqlite"
	case "postgresql":
		dbCfg.Driver = "postgres"
	case "mariadb":
		dbCfg.Driver = "mysql"
	}
	return dbCfg
}

// OpenDocumentStore builds the document store on the configured backend.
func OpenDocumentStore(ctx context.Context, cfg *Config) (*docstore.Store, error) {
	var backend docstore.Backend

	kind := strings.ToLower(strings.TrimSpace(cfg.Storage.Documents))
	switch kind {
	case "", "file":
		fb, err := docstore.NewFileBackend(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open document file: %w", err)
		}
		backend = fb
	case "s3":
		s3b, err := docstore.NewS3Backend(ctx, docstore.S3Config{
			Bucket:          cfg.Storage.S3.Bucket,
			Key:             cfg.Storage.S3.Key,
			Region:          cfg.Storage.S3.Region,
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			PathStyle:       cfg.Storage.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("open document bucket: %w", err)
		}
		backend = s3b
	case "memory":
		backend = docstore.NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported document storage %q", cfg.Storage.Documents)
	}

	store, err := docstore.New(backend)
	if err != nil {
		return nil, fmt.Errorf("initialise document store: %w", err)
	}

	logger.WithModule("docstore").Info("document store ready", zap.String("backend", kind))
	return store, nil
}
