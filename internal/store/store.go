// Package store provides the SQLite-backed session journal for taskboard.
//
// The database lives in memory and is discarded when the Store is closed; nothing
// is written to disk.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fentz26/taskboard/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store provides access to the in-memory journal database.
type Store struct {
	db *sql.DB
}

// New opens an in-memory database and runs migrations.
func New(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Each connection to ":memory:" gets its own database, so keep exactly one
	// and never let it expire.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection, dropping the journal.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS actions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		action TEXT NOT NULL,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		task_id TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_actions_task_id ON actions(task_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// WriteEntry records one dispatched action.
func (s *Store) WriteEntry(ctx context.Context, action, inputsHash, outcome, taskID, details string) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{
		ID:         uuid.New().String(),
		Action:     action,
		InputsHash: inputsHash,
		Outcome:    outcome,
		TaskID:     taskID,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actions (id, action, inputs_hash, outcome, task_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Action, entry.InputsHash, entry.Outcome, nullString(entry.TaskID), nullString(entry.Details), entry.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert action: %w", err)
	}
	return entry, nil
}

// ListEntries returns the most recent entries, newest first. limit <= 0 returns all.
func (s *Store) ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	query := `SELECT id, action, inputs_hash, outcome, task_id, details, timestamp FROM actions ORDER BY seq DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(ctx, query, args...)
}

// EntriesForTask returns the entries that touched taskID, oldest first.
func (s *Store) EntriesForTask(ctx context.Context, taskID string) ([]models.JournalEntry, error) {
	return s.queryEntries(ctx,
		`SELECT id, action, inputs_hash, outcome, task_id, details, timestamp FROM actions WHERE task_id = ? ORDER BY seq ASC`,
		taskID,
	)
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM actions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count actions: %w", err)
	}
	return n, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...interface{}) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var taskID, details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.InputsHash, &e.Outcome, &taskID, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		e.TaskID = taskID.String
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
