package store

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

// timeLayout is fixed width so lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun stores the outcome of a projection run.
func (o ops) RecordRun(ctx context.Context, run ledger.RunRecord) error {
	_, err := o.exec(ctx, `INSERT INTO projection_runs
		(run_id, started_at, finished_at, status, message, entries)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
		run.Status, run.Message, run.Entries,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (o ops) ListRuns(ctx context.Context, limit int) ([]ledger.RunRecord, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := o.query(ctx, `SELECT run_id, started_at, finished_at, status, message, entries
		FROM projection_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []ledger.RunRecord
	for rows.Next() {
		var (
			run             ledger.RunRecord
			started, finish string
		)
		if err := rows.Scan(&run.ID, &started, &finish, &run.Status, &run.Message, &run.Entries); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, _ = time.Parse(timeLayout, started)
		run.FinishedAt, _ = time.Parse(timeLayout, finish)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
