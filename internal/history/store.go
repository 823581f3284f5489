// Package history records solve runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by Latest when a day has no recorded runs.
var ErrRunNotFound = errors.New("run not found")

// Status summarises how a run ended.
type Status string

const (
	StatusSolved    Status = "solved"
	StatusPartial   Status = "partial"
	StatusUnsolved  Status = "unsolved"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded solve.
type Run struct {
	ID        string
	Day       int
	Part1     *uint64
	Part2     *uint64
	Status    Status
	StartedAt time.Time
	Duration  time.Duration
	Error     string
}

// Query filters List results.
type Query struct {
	Day   int // 0 matches every day
	Limit int // Max results to return
}

// Store persists runs.
type Store struct {
	db *sql.DB
}

// Open opens (and creates, if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			day INTEGER NOT NULL,
			part1 TEXT,
			part2 TEXT,
			status TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS runs_day_idx ON runs(day, started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}
	return nil
}

// Record stores run. An empty ID is filled with a new UUID and a zero
// StartedAt with the current time.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.Day <= 0 {
		return fmt.Errorf("run day is required")
	}
	if run.Status == "" {
		return fmt.Errorf("run status is required")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	return withRetry(ctx, defaultRetryAttempts, defaultRetryBackoff, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO runs (id, day, part1, part2, status, started_at, duration_ms, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			run.Day,
			formatResult(run.Part1),
			formatResult(run.Part2),
			string(run.Status),
			run.StartedAt.Format(timeLayout),
			run.Duration.Milliseconds(),
			nullString(run.Error),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		return nil
	})
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Run, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, day, part1, part2, status, started_at, duration_ms, error FROM runs WHERE 1=1`
	args := []any{}
	if q.Day > 0 {
		query += ` AND day = ?`
		args = append(args, q.Day)
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// Latest returns the most recent run for day.
func (s *Store) Latest(ctx context.Context, day int) (Run, error) {
	runs, err := s.List(ctx, Query{Day: day, Limit: 1})
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: day %d", ErrRunNotFound, day)
	}
	return runs[0], nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		part1      sql.NullString
		part2      sql.NullString
		status     string
		startedAt  string
		durationMs int64
		errText    sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.Day, &part1, &part2, &status, &startedAt, &durationMs, &errText); err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	var err error
	if run.Part1, err = parseResult(part1); err != nil {
		return Run{}, fmt.Errorf("run %s part1: %w", run.ID, err)
	}
	if run.Part2, err = parseResult(part2); err != nil {
		return Run{}, fmt.Errorf("run %s part2: %w", run.ID, err)
	}
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return Run{}, fmt.Errorf("run %s started_at: %w", run.ID, err)
	}
	run.Status = Status(status)
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.Error = errText.String
	return run, nil
}

// Results are stored as text so the full uint64 range survives SQLite's
// signed integers.
func formatResult(v *uint64) any {
	if v == nil {
		return nil
	}
	return strconv.FormatUint(*v, 10)
}

func parseResult(s sql.NullString) (*uint64, error) {
	if !s.Valid {
		return nil, nil
	}
	v, err := strconv.ParseUint(s.String, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
