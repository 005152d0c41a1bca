package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "recipe-planner/internal/metrics/db"
)

// OperationMetric records the outcome and latency of a single engine call.
type OperationMetric struct {
	Operation string
	Outcome   string
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(m OperationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return s.queries.InsertOperationMetric(context.Background(), metricsdb.InsertOperationMetricParams{
		Operation: m.Operation,
		Outcome:   m.Outcome,
		LatencyMs: m.LatencyMS,
		Timestamp: ts.UTC(),
	})
}

// DailyUsage represents operation totals for a single day.
type DailyUsage struct {
	Date         string
	Operations   int
	Failures     int
	AvgLatencyMS int64
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailyUsage(context.Background(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	results := make([]DailyUsage, 0, len(rows))
	for _, r := range rows {
		results = append(results, DailyUsage{
			Date:         r.Day,
			Operations:   int(r.Operations),
			Failures:     int(r.Failures),
			AvgLatencyMS: r.AvgLatencyMs,
		})
	}
	return results, nil
}

// OperationCount is the number of calls of one operation with one outcome.
type OperationCount struct {
	Operation string
	Outcome   string
	Count     int
}

// GetBreakdown counts calls per operation and outcome over the last N days.
func (s *Store) GetBreakdown(days int) ([]OperationCount, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetOperationBreakdown(context.Background(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to get operation breakdown: %w", err)
	}

	results := make([]OperationCount, 0, len(rows))
	for _, r := range rows {
		results = append(results, OperationCount{Operation: r.Operation, Outcome: r.Outcome, Count: int(r.Count)})
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	n, err := s.queries.CleanupOperationMetrics(context.Background(), threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return n, nil
}
