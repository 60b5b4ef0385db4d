package splitstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run kinds recorded in history.
const (
	RunKindScore   = "score"
	RunKindLatency = "latency"
)

// Run is one recorded evaluation.
type Run struct {
	ID          string
	Split       string
	Kind        string
	Engine      string
	WER         float64
	CER         float64
	NUtterances int
	NExcluded   int
	CreatedAt   time.Time
	ReportJSON  string
}

// NewRun builds a Run with a fresh identifier and the report serialized.
func NewRun(split, kind, engine string, report any) (Run, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return Run{}, fmt.Errorf("marshal report: %w", err)
	}
	return Run{
		ID:         uuid.NewString(),
		Split:      split,
		Kind:       kind,
		Engine:     engine,
		CreatedAt:  time.Now().UTC(),
		ReportJSON: string(payload),
	}, nil
}

// RecordRun appends a run to the history.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs (
        id, split, kind, engine, wer, cer, n_utterances, n_excluded, created_at, report_json
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Split, run.Kind, run.Engine,
		run.WER, run.CER, run.NUtterances, run.NExcluded,
		run.CreatedAt.Format(time.RFC3339Nano), run.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns run history, newest first. A zero limit returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, split, kind, engine, wer, cer, n_utterances, n_excluded, created_at, report_json
        FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Split, &run.Kind, &run.Engine,
			&run.WER, &run.CER, &run.NUtterances, &run.NExcluded,
			&createdAt, &run.ReportJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			run.CreatedAt = parsed
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
