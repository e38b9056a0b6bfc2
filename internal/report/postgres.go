package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/storefrontqa/journey/internal/config"
)

// PostgresSink records run history in a shared database, so flaky
// tests and profile-specific regressions are visible across runs.
type PostgresSink struct {
	db *sql.DB
}

// OpenPostgresSink connects to the configured run-history database
func OpenPostgresSink(cfg *config.ResultsConfig) (*PostgresSink, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}

	return &PostgresSink{db: db}, nil
}

// NewPostgresSinkWithDB wraps an existing connection, primarily for
// testing
func NewPostgresSinkWithDB(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the run-history tables if they do not exist
func (s *PostgresSink) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id UUID PRIMARY KEY,
			profile TEXT NOT NULL,
			base_url TEXT NOT NULL,
			started TIMESTAMPTZ NOT NULL,
			duration_ms BIGINT NOT NULL,
			passed INT NOT NULL,
			failed INT NOT NULL,
			skipped INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_tests (
			id UUID PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			package TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ms BIGINT NOT NULL,
			flaky BOOLEAN NOT NULL DEFAULT FALSE
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure results schema: %w", err)
	}
	return nil
}

// RecordRun inserts the run and its per-test rows in one transaction
// and returns the new run's ID
func (s *PostgresSink) RecordRun(summary *RunSummary) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin results transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO runs (id, profile, base_url, started, duration_ms, passed, failed, skipped, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		runID,
		summary.Profile,
		summary.BaseURL,
		summary.Started,
		summary.Duration.Milliseconds(),
		summary.Passed,
		summary.Failed,
		summary.Skipped,
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run row: %w", err)
	}

	for _, tr := range summary.Tests {
		_, err = tx.Exec(`
			INSERT INTO run_tests (id, run_id, name, package, status, duration_ms, flaky)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			uuid.New().String(),
			runID,
			tr.Name,
			tr.Package,
			tr.Status,
			tr.Duration.Milliseconds(),
			tr.Flaky,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert test row for %s: %w", tr.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit results transaction: %w", err)
	}
	return runID, nil
}

// RecentFailures returns the most recently failed test names for a
// profile, newest first
func (s *PostgresSink) RecentFailures(profile string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT rt.name
		FROM run_tests rt
		JOIN runs r ON r.id = rt.run_id
		WHERE r.profile = $1 AND rt.status = $2
		ORDER BY r.started DESC
		LIMIT $3
	`, profile, StatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent failures: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan failure row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failure rows: %w", err)
	}
	return names, nil
}

// Close closes the database connection
func (s *PostgresSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
