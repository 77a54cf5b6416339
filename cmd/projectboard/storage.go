package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/projectboard/internal/config"
	"github.com/rpggio/projectboard/internal/memory"
	"github.com/rpggio/projectboard/internal/postgres"
	"github.com/rpggio/projectboard/internal/repository"
	"github.com/rpggio/projectboard/internal/s3"
	"github.com/rpggio/projectboard/internal/sqlite"
)

func noClose() error { return nil }

// openStore returns the slot store selected by cfg.Driver and its closer.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (repository.SlotStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory storage")
		return memory.NewStore(), noClose, nil

	case config.DriverSQLite:
		if err := ensureDBDir(cfg.SQLitePath); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using sqlite storage", "path", cfg.SQLitePath)
		return sqlite.NewSlotRepository(db), db.Close, nil

	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres storage")
		return store, store.Close, nil

	case config.DriverS3:
		store, err := s3.New(ctx, s3.Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using s3 storage", "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)
		return store, noClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
