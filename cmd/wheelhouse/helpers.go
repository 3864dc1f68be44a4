package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/wheelhouse-cycles/wheelhouse/internal/config"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
	"github.com/wheelhouse-cycles/wheelhouse/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/wheelhouse/wheelhouse.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
