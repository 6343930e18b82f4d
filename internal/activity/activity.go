// Package activity keeps the audit trail of account events: registrations,
// logins, password changes, admin actions. It lives in its own SQLite file
// next to the data file and is append-only; entity state never touches it.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Log struct {
	db *sql.DB
}

// Entry is one recorded account event.
type Entry struct {
	ID    int64
	At    time.Time
	Email string
	Event string
}

// Open opens (and creates if missing) the activity database at path.
func Open(ctx context.Context, path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open activity db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping activity db: %w", err)
	}
	l := &Log{db: db}
	if err := l.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) migrate(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at DATETIME NOT NULL,
			email TEXT NOT NULL,
			event TEXT NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("activity migrate: %w", err)
	}
	return nil
}

// Record appends one event for the given account.
func (l *Log) Record(ctx context.Context, email, event string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO activity (at, email, event)
		VALUES (?, ?, ?)
	`, time.Now().UTC(), email, event)
	if err != nil {
		return fmt.Errorf("activity insert: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, at, email, event
		FROM activity
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("activity query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Email, &e.Event); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}

// ForUser returns up to limit entries for one account, newest first.
func (l *Log) ForUser(ctx context.Context, email string, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, at, email, event
		FROM activity
		WHERE email = ?
		ORDER BY id DESC
		LIMIT ?
	`, email, limit)
	if err != nil {
		return nil, fmt.Errorf("activity query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Email, &e.Event); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}
