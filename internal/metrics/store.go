package metrics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerationMetric records metadata for a single generation run.
type GenerationMetric struct {
	RunID          string
	UserID         string
	Kind           string // "month" or "single"
	Days           int
	Slots          int
	SoftDuplicates int
	LatencyMS      int64
	Timestamp      time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database. A missing RunID or Timestamp is
// filled in here so call sites stay terse.
func (s *Store) Record(m GenerationMetric) error {
	if m.RunID == "" {
		m.RunID = uuid.NewString()
	}
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO generation_runs (id, user_id, kind, days, slots, soft_duplicates, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.UserID, m.Kind, m.Days, m.Slots, m.SoftDuplicates, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation metric: %w", err)
	}
	return nil
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date           string
	Runs           int
	Slots          int
	SoftDuplicates int
}

// GetDailyUsage retrieves per-day generation totals for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(
		`SELECT date(created_at) AS day, COUNT(*), SUM(slots), SUM(soft_duplicates)
		 FROM generation_runs
		 WHERE created_at >= ?
		 GROUP BY day
		 ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var slots, dups sql.NullInt64
		if err := rows.Scan(&u.Date, &u.Runs, &slots, &dups); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		u.Slots = int(slots.Int64)
		u.SoftDuplicates = int(dups.Int64)
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.Exec(`DELETE FROM generation_runs WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return res.RowsAffected()
}
