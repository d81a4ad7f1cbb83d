package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/seen"
)

// sqliteTime is fixed-width so stored timestamps compare correctly as text.
const sqliteTime = "2006-01-02 15:04:05.000000000"

// SQLiteStore persists the seen-set in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ seen.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// schema exists. A file that is not a SQLite database is reported as corrupt.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS seen_fingerprints (
			fingerprint TEXT PRIMARY KEY,
			first_seen  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_state (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			last_run TEXT
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w: creating schema: %v", dbPath, model.ErrCorruptState, err)
		}
	}

	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Load reads every stored fingerprint and the last run time.
func (s *SQLiteStore) Load(ctx context.Context) (*seen.Set, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT fingerprint FROM seen_fingerprints")
	if err != nil {
		return nil, fmt.Errorf("loading seen fingerprints: %w", err)
	}
	defer rows.Close()

	set := seen.NewSet()
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("%w: scanning fingerprint: %v", model.ErrCorruptState, err)
		}
		set.Add(fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading seen fingerprints: %w", err)
	}

	var lastRun sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT last_run FROM run_state WHERE id = 1").Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reading last_run: %v", model.ErrCorruptState, err)
	}
	if lastRun.Valid && lastRun.String != "" {
		t, err := time.ParseInLocation(sqliteTime, lastRun.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: last_run %q: %v", model.ErrCorruptState, lastRun.String, err)
		}
		set.LastRun = &t
	}
	return set, nil
}

// Save inserts any fingerprints not yet stored and stamps last_run, all in one
// transaction. Existing rows keep their first_seen time.
func (s *SQLiteStore) Save(ctx context.Context, set *seen.Set) error {
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	stamp := now.Format(sqliteTime)
	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO seen_fingerprints (fingerprint, first_seen) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, fp := range set.Fingerprints() {
		if _, err := stmt.ExecContext(ctx, fp, stamp); err != nil {
			return fmt.Errorf("marking %s as seen: %w", fp, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO run_state (id, last_run) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET last_run = excluded.last_run`, stamp)
	if err != nil {
		return fmt.Errorf("stamping last_run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	set.LastRun = &now
	return nil
}

// Cleanup deletes fingerprints first seen longer ago than olderThan, so a
// listing reposted after that window is reported again.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).Format(sqliteTime)
	res, err := s.db.ExecContext(ctx, "DELETE FROM seen_fingerprints WHERE first_seen < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up fingerprints older than %v: %w", olderThan, err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
