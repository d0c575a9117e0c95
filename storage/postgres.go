package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ruteri/trainer-intake/interfaces"
)

const trainerColumns = `id, name, date_of_birth, photo_url, gender, student_gender_preference, academies,
	residential_available, cref, cref_validity, whatsapp, email, instagram, contact_consent, created_at`

const insertTrainerSQL = `
	INSERT INTO personal_trainers (id, name, date_of_birth, photo_url, gender, student_gender_preference, academies,
		residential_available, cref, cref_validity, whatsapp, email, instagram, contact_consent)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING created_at`

// PostgresStore implements interfaces.TrainerStore on top of a pgx pool.
//
// The pool is created on first use and then shared by every request for the
// life of the process. pgxpool connects lazily, so a database that is down at
// startup only surfaces as ErrStorageUnreachable on the first query.
type PostgresStore struct {
	dsn      string
	maxConns int32
	log      *slog.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store for dsn. An empty dsn yields a store whose
// every call fails with interfaces.ErrStorageNotConfigured.
func NewPostgresStore(dsn string, maxConns int32, log *slog.Logger) *PostgresStore {
	return &PostgresStore{
		dsn:      dsn,
		maxConns: maxConns,
		log:      log,
	}
}

// Configured reports whether a connection string was provided.
func (s *PostgresStore) Configured() bool {
	return s.dsn != ""
}

func (s *PostgresStore) getPool(ctx context.Context) (*pgxpool.Pool, error) {
	if s.dsn == "" {
		return nil, interfaces.ErrStorageNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		return s.pool, nil
	}

	cfg, err := pgxpool.ParseConfig(s.dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}
	if s.maxConns > 0 {
		cfg.MaxConns = s.maxConns
	}
	cfg.MaxConnLifetime = time.Hour

	// Pooled connection strings usually point at PgBouncer in transaction
	// mode, which cannot keep prepared statements between transactions.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, classifyError(fmt.Errorf("unable to create database pool: %w", err))
	}

	s.log.Info("Database pool created", slog.String("host", cfg.ConnConfig.Host), slog.Int("maxConns", int(cfg.MaxConns)))
	s.pool = pool
	return pool, nil
}

// Create inserts app with a single statement.
func (s *PostgresStore) Create(ctx context.Context, app *interfaces.TrainerApplication) (*interfaces.TrainerApplication, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	out := *app
	err = pool.QueryRow(ctx, insertTrainerSQL,
		app.ID,
		app.Name,
		app.DateOfBirth,
		app.PhotoURL,
		string(app.Gender),
		string(app.StudentGenderPreference),
		app.Academies,
		app.ResidentialAvailable,
		app.Cref,
		app.CrefValidity,
		app.Whatsapp,
		app.Email,
		app.Instagram,
		app.ContactConsent,
	).Scan(&out.CreatedAt)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to insert trainer: %w", err))
	}
	return &out, nil
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]interfaces.TrainerApplication, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + trainerColumns + " FROM personal_trainers ORDER BY created_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list trainers: %w", err))
	}
	defer rows.Close()

	out := make([]interfaces.TrainerApplication, 0)
	for rows.Next() {
		var (
			t          interfaces.TrainerApplication
			gender     string
			preference string
		)
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.DateOfBirth,
			&t.PhotoURL,
			&gender,
			&preference,
			&t.Academies,
			&t.ResidentialAvailable,
			&t.Cref,
			&t.CrefValidity,
			&t.Whatsapp,
			&t.Email,
			&t.Instagram,
			&t.ContactConsent,
			&t.CreatedAt,
		); err != nil {
			return nil, classifyError(fmt.Errorf("failed to scan trainer: %w", err))
		}
		t.Gender = interfaces.Gender(gender)
		t.StudentGenderPreference = interfaces.StudentGenderPreference(preference)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to list trainers: %w", err))
	}
	return out, nil
}

// Ping checks that the database answers.
func (s *PostgresStore) Ping(ctx context.Context) error {
	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}
	return classifyError(pool.Ping(ctx))
}

// Close releases the pool if it was ever created.
func (s *PostgresStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
