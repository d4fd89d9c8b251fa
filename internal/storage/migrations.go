package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

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
				`CREATE TABLE IF NOT EXISTS quotes (
					response_id TEXT PRIMARY KEY,
					text TEXT NOT NULL,
					subject TEXT NOT NULL,
					sentiment TEXT NOT NULL DEFAULT 'neutral',
					impact INTEGER NOT NULL DEFAULT 3,
					company TEXT NOT NULL,
					deal_outcome TEXT NOT NULL DEFAULT 'other',
					interviewee TEXT,
					raw_question TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_quotes_subject ON quotes(subject)`,
				`CREATE INDEX idx_quotes_company ON quotes(company)`,

				`CREATE TABLE IF NOT EXISTS guide_questions (
					position INTEGER PRIMARY KEY,
					question TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS themes (
					id TEXT PRIMARY KEY,
					theme_type TEXT NOT NULL,
					key TEXT NOT NULL,
					origin TEXT NOT NULL,
					pattern TEXT,
					statement TEXT,
					company_count INTEGER NOT NULL,
					effective_quotes INTEGER NOT NULL,
					mean_impact REAL NOT NULL,
					coherence REAL,
					quality_score REAL NOT NULL,
					max_share REAL NOT NULL,
					biased INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_themes_type ON themes(theme_type)`,

				`CREATE TABLE IF NOT EXISTS theme_quotes (
					theme_id TEXT NOT NULL,
					response_id TEXT NOT NULL,
					PRIMARY KEY (theme_id, response_id),
					FOREIGN KEY (theme_id) REFERENCES themes(id)
				)`,
			}

			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute %q: %w", q, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
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

	return nil
}
