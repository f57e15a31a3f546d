package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vidyasagar/navsurf/history"
)

// Outcome is how a transition attempt ended.
type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeDenied    Outcome = "denied"
	OutcomeRejected  Outcome = "rejected" // refused while another decision was pending
)

// JournalEntry is one recorded transition attempt.
type JournalEntry struct {
	ID         int64
	Action     history.Action
	Path       string
	Key        string
	Outcome    Outcome
	SessionLen int
	At         time.Time
}

// Journal records transition attempts for the session.
type Journal struct {
	db      *DB
	maxSize int // max number of entries to keep
	now     func() time.Time
}

// NewJournal creates a journal backed by db.
func NewJournal(db *DB) *Journal {
	return &Journal{db: db, maxSize: 1000, now: time.Now}
}

// Record appends an entry, dropping the oldest ones beyond the size limit.
func (j *Journal) Record(ctx context.Context, e JournalEntry) (JournalEntry, error) {
	if e.At.IsZero() {
		e.At = j.now()
	}

	res, err := j.db.conn.ExecContext(ctx,
		`INSERT INTO transitions (action, path, location_key, outcome, session_len, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(e.Action), e.Path, e.Key, string(e.Outcome), e.SessionLen, e.At.UnixMilli())
	if err != nil {
		return JournalEntry{}, fmt.Errorf("recording transition: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return JournalEntry{}, fmt.Errorf("reading transition id: %w", err)
	}

	if _, err := j.db.conn.ExecContext(ctx,
		`DELETE FROM transitions WHERE id <= (SELECT MAX(id) FROM transitions) - ?`, j.maxSize); err != nil {
		return JournalEntry{}, fmt.Errorf("trimming journal: %w", err)
	}

	return e, nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (j *Journal) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	return j.query(ctx,
		`SELECT id, action, path, location_key, outcome, session_len, created_at
		 FROM transitions ORDER BY id DESC LIMIT ?`, limit)
}

// Search finds entries whose path contains query, ignoring case.
func (j *Journal) Search(ctx context.Context, query string) ([]JournalEntry, error) {
	return j.query(ctx,
		`SELECT id, action, path, location_key, outcome, session_len, created_at
		 FROM transitions WHERE path LIKE '%' || ? || '%' ORDER BY id DESC`, query)
}

// Count returns the number of entries, optionally limited to one outcome.
func (j *Journal) Count(ctx context.Context, outcome Outcome) (int, error) {
	var n int
	var err error
	if outcome == "" {
		err = j.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM transitions`).Scan(&n)
	} else {
		err = j.db.conn.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM transitions WHERE outcome = ?`, string(outcome)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting transitions: %w", err)
	}
	return n, nil
}

// Clear removes all entries.
func (j *Journal) Clear(ctx context.Context) error {
	if _, err := j.db.conn.ExecContext(ctx, `DELETE FROM transitions`); err != nil {
		return fmt.Errorf("clearing journal: %w", err)
	}
	return nil
}

func (j *Journal) query(ctx context.Context, q string, args ...any) ([]JournalEntry, error) {
	rows, err := j.db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (JournalEntry, error) {
	var (
		e               JournalEntry
		action, outcome string
		at              int64
	)
	if err := rows.Scan(&e.ID, &action, &e.Path, &e.Key, &outcome, &e.SessionLen, &at); err != nil {
		return JournalEntry{}, fmt.Errorf("scanning transition: %w", err)
	}
	e.Action = history.Action(action)
	e.Outcome = Outcome(outcome)
	e.At = time.UnixMilli(at)
	return e, nil
}
