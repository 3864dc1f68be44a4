package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS bicycles (
					id INTEGER PRIMARY KEY,
					brand TEXT NOT NULL,
					type TEXT NOT NULL,
					frame_size TEXT,
					rental_rate REAL NOT NULL DEFAULT 0,
					price REAL NOT NULL DEFAULT 0,
					purchase_date DATETIME,
					condition_label TEXT,
					status TEXT NOT NULL DEFAULT 'available',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_bicycles_brand ON bicycles(brand)`,
				`CREATE INDEX idx_bicycles_type ON bicycles(type)`,
				`CREATE INDEX idx_bicycles_status ON bicycles(status)`,

				`CREATE TABLE IF NOT EXISTS members (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					email TEXT,
					phone TEXT,
					membership_end DATETIME,
					rental_limit INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS rentals (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					bicycle_id INTEGER NOT NULL,
					member_id INTEGER NOT NULL,
					rental_date DATETIME NOT NULL,
					due_date DATETIME,
					returned_at DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (bicycle_id) REFERENCES bicycles(id)
				)`,
				`CREATE INDEX idx_rentals_bicycle ON rentals(bicycle_id)`,
				`CREATE INDEX idx_rentals_member ON rentals(member_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index open rentals for availability checks",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(
				`CREATE INDEX IF NOT EXISTS idx_rentals_open ON rentals(bicycle_id) WHERE returned_at IS NULL`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
