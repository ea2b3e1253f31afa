// Package store provides optional PostgreSQL persistence for comparison
// history.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorque/skillmatch/internal/compare"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the comparisons table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS comparisons (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			match_percentage INTEGER NOT NULL,
			present_count INTEGER NOT NULL,
			missing_count INTEGER NOT NULL,
			report JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create comparisons table: %w", err)
	}
	return nil
}

// ComparisonRecord is one persisted comparison.
type ComparisonRecord struct {
	ID              uuid.UUID       `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	MatchPercentage int             `json:"match_percentage"`
	PresentCount    int             `json:"present_count"`
	MissingCount    int             `json:"missing_count"`
	Report          json.RawMessage `json:"report"`
}

// RecordComparison stores a finished report. It implements compare.Recorder.
func (s *Store) RecordComparison(ctx context.Context, report *compare.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO comparisons (match_percentage, present_count, missing_count, report)
		 VALUES ($1, $2, $3, $4)`,
		report.MatchPercentage, report.PresentCount, len(report.MissingSkills), payload)
	if err != nil {
		return fmt.Errorf("failed to record comparison: %w", err)
	}
	return nil
}

// ListRecent returns the most recent comparisons, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]ComparisonRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, match_percentage, present_count, missing_count, report
		 FROM comparisons
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var records []ComparisonRecord
	for rows.Next() {
		var rec ComparisonRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.MatchPercentage,
			&rec.PresentCount, &rec.MissingCount, &rec.Report); err != nil {
			return nil, fmt.Errorf("failed to scan comparison row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
