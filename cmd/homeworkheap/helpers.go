package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/homework-heap/internal/config"
	"github.com/Veraticus/homework-heap/internal/storage"
)

// initStorage opens the run history database and applies migrations.
func initStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
