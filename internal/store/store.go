// Package store persists solve sessions to SQLite for auditing and the
// history/stats commands. The guess history is append-only: a recorded
// session is never updated, only read back.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"wordnerd/internal/feedback"
	"wordnerd/internal/solver"
)

// Store wraps the SQLite handle. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open initializes the database at path, creating directories and the
// schema as needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: journal_mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	mode        TEXT NOT NULL,
	secret      TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	attempts    INTEGER NOT NULL,
	elapsed_ms  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS guesses (
	session_id  TEXT NOT NULL REFERENCES sessions(id),
	attempt     INTEGER NOT NULL,
	word        TEXT NOT NULL,
	pattern     TEXT NOT NULL,
	PRIMARY KEY (session_id, attempt)
);
CREATE INDEX IF NOT EXISTS idx_sessions_outcome ON sessions(outcome);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: initialize schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSession writes one finished session and its guesses. mode names
// the evaluator (remote, simulate); secret is empty for remote play.
func (s *Store) RecordSession(res *solver.Result, mode, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, mode, secret, outcome, attempts, elapsed_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		res.SessionID, mode, secret, string(res.Outcome), len(res.Guesses), res.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("store: insert session: %w", err)
	}
	for i, g := range res.Guesses {
		_, err = tx.Exec(
			`INSERT INTO guesses (session_id, attempt, word, pattern) VALUES (?, ?, ?, ?)`,
			res.SessionID, i+1, g.Word, feedback.Pattern(g.Feedback),
		)
		if err != nil {
			return fmt.Errorf("store: insert guess %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// SessionRow is one stored session summary.
type SessionRow struct {
	ID        string
	StartedAt time.Time
	Mode      string
	Secret    string
	Outcome   string
	Attempts  int
	Elapsed   time.Duration
}

// Sessions returns up to limit sessions, newest first.
func (s *Store) Sessions(limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, mode, secret, outcome, attempts, elapsed_ms
		 FROM sessions ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Mode, &r.Secret, &r.Outcome, &r.Attempts, &elapsedMS); err != nil {
			return nil, fmt.Errorf("store: scan session: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// GuessRow is one stored guess.
type GuessRow struct {
	Attempt int
	Word    string
	Pattern string
}

// SessionGuesses returns a session's guesses in submission order.
func (s *Store) SessionGuesses(sessionID string) ([]GuessRow, error) {
	rows, err := s.db.Query(
		`SELECT attempt, word, pattern FROM guesses WHERE session_id = ? ORDER BY attempt`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: query guesses: %w", err)
	}
	defer rows.Close()

	var out []GuessRow
	for rows.Next() {
		var g GuessRow
		if err := rows.Scan(&g.Attempt, &g.Word, &g.Pattern); err != nil {
			return nil, fmt.Errorf("store: scan guess: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Stats aggregates stored sessions.
type Stats struct {
	Total        int
	Won          int
	Distribution map[int]int // attempts -> won sessions
}

// WinRate is the won fraction, zero when nothing is recorded.
func (st Stats) WinRate() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Won) / float64(st.Total)
}

// ReadStats computes aggregate statistics over all stored sessions.
func (s *Store) ReadStats() (Stats, error) {
	st := Stats{Distribution: make(map[int]int)}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&st.Total); err != nil {
		return st, fmt.Errorf("store: count sessions: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT attempts, COUNT(*) FROM sessions WHERE outcome = ? GROUP BY attempts`,
		string(solver.Won))
	if err != nil {
		return st, fmt.Errorf("store: query distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var attempts, count int
		if err := rows.Scan(&attempts, &count); err != nil {
			return st, fmt.Errorf("store: scan distribution: %w", err)
		}
		st.Distribution[attempts] = count
		st.Won += count
	}
	return st, rows.Err()
}
