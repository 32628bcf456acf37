// Package audit persists a trail of describe calls to SQLite. The trail
// records what was asked and what won; it never feeds back into ranking.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Entry is one recorded describe call.
type Entry struct {
	RequestID  string  `json:"requestId"`
	Timestamp  int64   `json:"timestamp"` // unix millis
	Hint       string  `json:"hint,omitempty"`
	TopPane    string  `json:"topPane"`
	TopScore   float64 `json:"topScore"`
	PaneCount  int     `json:"paneCount"`
	DurationMs int64   `json:"durationMs"`
}

// Log is an append-only describe-call trail backed by SQLite.
type Log struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// Open opens or creates the audit database at dir/audit.db.
func Open(dir string, logger *slog.Logger) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	path := filepath.Join(dir, "audit.db")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	logger.Debug("audit trail open", "path", path)
	return &Log{conn: conn, logger: logger, path: path}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS describe_log (
	request_id  TEXT PRIMARY KEY,
	ts          INTEGER NOT NULL,
	hint        TEXT NOT NULL DEFAULT '',
	top_pane    TEXT NOT NULL,
	top_score   REAL NOT NULL,
	pane_count  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_describe_log_ts ON describe_log(ts DESC);
`

// Close closes the database connection.
func (l *Log) Close() error {
	return l.conn.Close()
}

// Record appends one entry.
func (l *Log) Record(e Entry) error {
	_, err := l.conn.Exec(
		`INSERT INTO describe_log (request_id, ts, hint, top_pane, top_score, pane_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Timestamp, e.Hint, e.TopPane, e.TopScore, e.PaneCount, e.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	rows, err := l.conn.Query(
		`SELECT request_id, ts, hint, top_pane, top_score, pane_count, duration_ms
		 FROM describe_log ORDER BY ts DESC, request_id LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RequestID, &e.Timestamp, &e.Hint, &e.TopPane,
			&e.TopScore, &e.PaneCount, &e.DurationMs); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Export streams the whole trail as JSON lines, oldest first, optionally
// gzip-compressed.
func (l *Log) Export(w io.Writer, gzipped bool) error {
	rows, err := l.conn.Query(
		`SELECT request_id, ts, hint, top_pane, top_score, pane_count, duration_ms
		 FROM describe_log ORDER BY ts, request_id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	out := w
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(w)
		out = gz
	}

	enc := json.NewEncoder(out)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RequestID, &e.Timestamp, &e.Hint, &e.TopPane,
			&e.TopScore, &e.PaneCount, &e.DurationMs); err != nil {
			return err
		}
		if err := enc.Encode(&e); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if gz != nil {
		return gz.Close()
	}
	return nil
}
