package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLRecorder persists submit history to SQLite or PostgreSQL.
type SQLRecorder struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
}

// NewSQLRecorder opens (or creates) the database and runs migrations.
// driver is "sqlite" or "postgres".
func NewSQLRecorder(driver, dsn string) (*SQLRecorder, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// WAL lets the history endpoint read while a submit writes.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLRecorder{db: db, driver: driver}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] %s recorder opened", driver)
	return r, nil
}

func (r *SQLRecorder) migrate() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id          ` + idColumn + `,
			request_id  TEXT NOT NULL,
			timestamp   BIGINT NOT NULL,
			symbol      TEXT,
			start_date  TEXT,
			end_date    TEXT,
			outcome     TEXT,
			row_count   INTEGER,
			error       TEXT,
			duration_ms BIGINT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_ts ON submissions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (r *SQLRecorder) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLRecorder) RecordSubmit(s *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := s.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(r.rebind(`INSERT INTO submissions
		(request_id, timestamp, symbol, start_date, end_date, outcome, row_count, error, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?)`),
		s.RequestID, ts.Unix(), s.Symbol, s.StartDate, s.EndDate,
		s.Outcome, s.Rows, s.Error, s.Duration.Milliseconds(),
	)
	return err
}

// Recent returns up to limit submissions, newest first.
func (r *SQLRecorder) Recent(limit int) ([]Submission, error) {
	rows, err := r.db.Query(r.rebind(`SELECT request_id, timestamp, symbol, start_date, end_date,
		outcome, row_count, COALESCE(error, ''), duration_ms
		FROM submissions ORDER BY id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	out := make([]Submission, 0, limit)
	for rows.Next() {
		var s Submission
		var ts int64
		if err := rows.Scan(&s.RequestID, &ts, &s.Symbol, &s.StartDate, &s.EndDate,
			&s.Outcome, &s.Rows, &s.Error, &s.DurationMS); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.Timestamp = time.Unix(ts, 0)
		s.Duration = time.Duration(s.DurationMS) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}

// Prune deletes submissions recorded before the given time.
func (r *SQLRecorder) Prune(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(r.rebind(`DELETE FROM submissions WHERE timestamp < ?`), before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune submissions: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLRecorder) Close() error {
	log.Printf("[INFO] closing %s recorder", r.driver)
	return r.db.Close()
}
