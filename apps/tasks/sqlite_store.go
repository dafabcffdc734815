package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const taskSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL DEFAULT 0,
	text     TEXT    NOT NULL,
	done     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position, id);
`

// SQLiteStore keeps tasks in a SQLite table. Every row is a task.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(taskSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add appends a task at the end of the list.
func (s *SQLiteStore) Add(ctx context.Context, text string, done bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (position, text, done)
		 VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM tasks), ?, ?)`,
		text, done)
	return err
}

// Seed copies the tasks of src into an empty table and reports how many
// were added. A table that already holds rows is left alone.
func (s *SQLiteStore) Seed(ctx context.Context, src Store) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	entries, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	added := 0
	for _, e := range entries {
		if !e.IsTask {
			continue
		}
		added++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (position, text, done) VALUES (?, ?, ?)`,
			added, e.Text, e.Done); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text, done FROM tasks ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Text, &e.Done); err != nil {
			return nil, err
		}
		e.IsTask = true
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Toggle(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET done = 1 - done
		 WHERE id = (SELECT id FROM tasks ORDER BY position, id LIMIT 1 OFFSET ?)`,
		index)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return nil
}
