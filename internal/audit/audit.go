// Package audit keeps an append-only record of authentication activity:
// gate unlocks, logins, registrations, logouts, and pre-launch form
// submissions. The gate itself never reads this store; session state lives
// entirely in the client-held cookies.
package audit

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Event kinds recorded by the API handlers.
const (
	KindAccessGranted = "access.granted"
	KindAccessDenied  = "access.denied"
	KindLoginOK       = "login.ok"
	KindLoginFailed   = "login.failed"
	KindRegistered    = "register.ok"
	KindLogout        = "logout"
	KindWaitlist      = "waitlist.joined"
	KindContact       = "contact.received"
)

var schema = `
CREATE TABLE IF NOT EXISTS auth_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    subject TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_auth_events_created ON auth_events(created_at);
`

// Store is the sqlite-backed event log.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: opening database %s: %w", path, err)
	}

	// Enable WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: setting busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: running migrations: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Record appends an event. Failures are logged, not returned: an audit miss
// must never fail the request that triggered it.
func (s *Store) Record(kind, subject, detail string) {
	if _, err := s.db.Exec(
		`INSERT INTO auth_events (kind, subject, detail) VALUES (?, ?, ?)`,
		kind, subject, detail,
	); err != nil {
		s.log.Error("audit: record event", "kind", kind, "error", err)
	}
}

// Event is one recorded row.
type Event struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject,omitempty"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(limit int) []Event {
	rows, err := s.db.Query(
		`SELECT id, kind, subject, detail, created_at FROM auth_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		s.log.Error("audit: query events", "error", err)
		return []Event{}
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Subject, &e.Detail, &e.CreatedAt); err != nil {
			s.log.Error("audit: scan event", "error", err)
			continue
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("audit: iterate events", "error", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
