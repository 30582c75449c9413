package logging

// #region imports
import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const sessionSchema = `
CREATE TABLE IF NOT EXISTS session_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	item        INTEGER NOT NULL DEFAULT 0,
	detail      TEXT,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_events_session
ON session_events(session_id, event_type);
`

// #endregion schema

// #region event-types

// Event types recorded per turn.
const (
	EventQuestion  = "question"
	EventAnswer    = "answer"
	EventClassify  = "classify"
	EventQUpdate   = "q_update"
	EventTerminal  = "terminal"
	EventCBTStage  = "cbt_stage"
	EventSessionUp = "session_start"
)

// Event is a single row in the session_events table.
type Event struct {
	SessionID string
	Type      string
	Item      int
	Detail    string
	CreatedAt time.Time
}

// #endregion

// #region session-log

// SessionLog persists per-turn provenance in SQLite. Append failures must not
// interrupt a session; callers log and continue.
type SessionLog struct {
	db *sql.DB
}

// OpenSessionLog opens (creating if needed) the session event database.
func OpenSessionLog(path string) (*SessionLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SessionLog{db: db}, nil
}

// Close releases the underlying database handle.
func (l *SessionLog) Close() error { return l.db.Close() }

// Append writes one event row.
func (l *SessionLog) Append(ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := l.db.Exec(
		`INSERT INTO session_events (session_id, event_type, item, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.SessionID,
		ev.Type,
		ev.Item,
		nullIfEmpty(ev.Detail),
		ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

// SessionSummary aggregates one session's rows for listing.
type SessionSummary struct {
	SessionID string
	Events    int
	StartedAt time.Time
	LastAt    time.Time
}

// Sessions lists the most recent sessions, newest first.
func (l *SessionLog) Sessions(limit int) ([]SessionSummary, error) {
	rows, err := l.db.Query(
		`SELECT session_id, COUNT(*), MIN(created_at), MAX(created_at)
		 FROM session_events GROUP BY session_id
		 ORDER BY MAX(created_at) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var first, last string
		if err := rows.Scan(&s.SessionID, &s.Events, &first, &last); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		s.StartedAt, _ = time.Parse(time.RFC3339Nano, first)
		s.LastAt, _ = time.Parse(time.RFC3339Nano, last)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Events returns one session's events in chronological order.
func (l *SessionLog) Events(sessionID string) ([]Event, error) {
	rows, err := l.db.Query(
		`SELECT session_id, event_type, item, detail, created_at
		 FROM session_events WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var detail sql.NullString
		var created string
		if err := rows.Scan(&ev.SessionID, &ev.Type, &ev.Item, &detail, &created); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		ev.Detail = detail.String
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count returns the number of events of the given type in a session.
func (l *SessionLog) Count(sessionID, eventType string) (int, error) {
	var n int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM session_events WHERE session_id = ? AND event_type = ?`,
		sessionID, eventType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count session events: %w", err)
	}
	return n, nil
}

// #endregion

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
