package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amishk599/medalerts/internal/seen"
)

// PostgresStore persists the seen-set in Postgres, for deployments where the
// digest runs on ephemeral hosts.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ seen.Store = (*PostgresStore)(nil)

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS seen_fingerprints (
			fingerprint TEXT PRIMARY KEY,
			first_seen  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS run_state (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			last_run TIMESTAMPTZ
		);`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PostgresStore{pool: pool, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*seen.Set, error) {
	rows, err := s.pool.Query(ctx, "SELECT fingerprint FROM seen_fingerprints")
	if err != nil {
		return nil, fmt.Errorf("loading seen fingerprints: %w", err)
	}
	fps, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("loading seen fingerprints: %w", err)
	}

	set := seen.NewSet(fps...)
	var lastRun *time.Time
	err = s.pool.QueryRow(ctx, "SELECT last_run FROM run_state WHERE id = 1").Scan(&lastRun)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reading last_run: %w", err)
	}
	if lastRun != nil {
		t := lastRun.UTC()
		set.LastRun = &t
	}
	return set, nil
}

// Save upserts all fingerprints and last_run in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, set *seen.Set) error {
	now := s.now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, fp := range set.Fingerprints() {
		batch.Queue("INSERT INTO seen_fingerprints (fingerprint) VALUES ($1) ON CONFLICT DO NOTHING", fp)
	}
	batch.Queue(`INSERT INTO run_state (id, last_run) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_run = EXCLUDED.last_run`, now)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("writing seen-set: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	set.LastRun = &now
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
