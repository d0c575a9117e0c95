package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// schemaStatements create the trainer table. They are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS personal_trainers (
		id                        TEXT PRIMARY KEY,
		name                      TEXT NOT NULL,
		date_of_birth             TIMESTAMPTZ NOT NULL,
		photo_url                 TEXT,
		gender                    TEXT NOT NULL,
		student_gender_preference TEXT NOT NULL,
		academies                 TEXT NOT NULL,
		residential_available     BOOLEAN NOT NULL DEFAULT FALSE,
		cref                      TEXT NOT NULL,
		cref_validity             TIMESTAMPTZ NOT NULL,
		whatsapp                  TEXT NOT NULL,
		email                     TEXT NOT NULL,
		instagram                 TEXT,
		contact_consent           BOOLEAN NOT NULL DEFAULT FALSE,
		created_at                TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS personal_trainers_cref_key ON personal_trainers (cref)`,
	`CREATE INDEX IF NOT EXISTS personal_trainers_created_at_idx ON personal_trainers (created_at DESC)`,
}

// Migrate creates the schema the store expects.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return classifyError(fmt.Errorf("failed to begin migration: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return classifyError(fmt.Errorf("migration statement %d failed: %w", i, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(fmt.Errorf("failed to commit migration: %w", err))
	}
	s.log.Info("Schema is up to date", slog.Int("statements", len(schemaStatements)))
	return nil
}
