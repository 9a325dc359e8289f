package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id              UUID PRIMARY KEY,
	topology_name   TEXT NOT NULL,
	operation       TEXT NOT NULL,
	node_count      INT NOT NULL,
	total_cpu       INT NOT NULL,
	total_memory_gb INT NOT NULL,
	monthly_cost    DOUBLE PRECISION NOT NULL,
	fixes_applied   INT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analysis_runs_created_at_idx ON analysis_runs (created_at);
`

// RunRecord is one persisted analysis run
type RunRecord struct {
	ID            string    `json:"id"`
	TopologyName  string    `json:"topology_name"`
	Operation     string    `json:"operation"`
	NodeCount     int       `json:"node_count"`
	TotalCPU      int       `json:"total_cpu"`
	TotalMemoryGB int       `json:"total_memory_gb"`
	MonthlyCost   float64   `json:"monthly_cost"`
	FixesApplied  int       `json:"fixes_applied"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store persists analysis-run history
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over an existing pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the history table when absent
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// RecordRun inserts one run; a missing ID is generated
func (s *Store) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analysis_runs
			(id, topology_name, operation, node_count, total_cpu, total_memory_gb, monthly_cost, fixes_applied)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.TopologyName, rec.Operation, rec.NodeCount,
		rec.TotalCPU, rec.TotalMemoryGB, rec.MonthlyCost, rec.FixesApplied,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return rec.ID, nil
}

// ListRunsSince returns runs recorded after the given time, newest first
func (s *Store) ListRunsSince(ctx context.Context, since time.Time) ([]RunRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, topology_name, operation, node_count, total_cpu, total_memory_gb, monthly_cost, fixes_applied, created_at
		 FROM analysis_runs
		 WHERE created_at >= $1
		 ORDER BY created_at DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.ID, &rec.TopologyName, &rec.Operation, &rec.NodeCount,
			&rec.TotalCPU, &rec.TotalMemoryGB, &rec.MonthlyCost,
			&rec.FixesApplied, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
