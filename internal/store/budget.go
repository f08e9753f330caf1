package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

// QueryBudgetTotals sums budget amounts per (period, program) for periods
// strictly after afterPeriod and programs in the allow-list.
func (o ops) QueryBudgetTotals(ctx context.Context, afterPeriod int, programs []string) ([]ledger.BudgetTotal, error) {
	if len(programs) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(programs)+1)
	args = append(args, afterPeriod)
	for _, p := range programs {
		args = append(args, p)
	}

	rows, err := o.query(ctx, `SELECT budget_period, program_code, COALESCE(SUM(monetary_amount), 0.0)
		FROM construction_budget
		WHERE budget_period > ? AND program_code IN (`+placeholders(len(programs))+`)
		GROUP BY budget_period, program_code
		ORDER BY budget_period, program_code`, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregating budget entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []ledger.BudgetTotal
	for rows.Next() {
		var t ledger.BudgetTotal
		if err := rows.Scan(&t.Period, &t.ProgramCode, &t.Amount); err != nil {
			return nil, fmt.Errorf("scanning budget total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// UpsertBudgetEntries inserts budget entries, replacing the label and amount
// of any entry with the same identity.
func (s *Store) UpsertBudgetEntries(ctx context.Context, entries []ledger.BudgetEntry) error {
	return s.inTx(ctx, func(o ops) error {
		for _, e := range entries {
			_, err := o.exec(ctx, `INSERT INTO construction_budget
				(budget_period, fund_code, program_code, project_id, activity_id, line_descr, monetary_amount)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (budget_period, fund_code, program_code, project_id, activity_id)
				DO UPDATE SET line_descr = excluded.line_descr, monetary_amount = excluded.monetary_amount`,
				e.BudgetPeriod, e.FundCode, e.ProgramCode, e.ProjectID, e.ActivityID, e.LineDescr, e.MonetaryAmount,
			)
			if err != nil {
				return fmt.Errorf("upserting budget entry %d/%s/%s: %w", e.BudgetPeriod, e.ProgramCode, e.ActivityID, err)
			}
		}
		return nil
	})
}

// ListBudgetEntries returns all budget entries ordered by identity.
func (o ops) ListBudgetEntries(ctx context.Context) ([]ledger.BudgetEntry, error) {
	rows, err := o.query(ctx, `SELECT budget_period, fund_code, program_code, project_id, activity_id,
		line_descr, monetary_amount
		FROM construction_budget
		ORDER BY budget_period, fund_code, program_code, project_id, activity_id`)
	if err != nil {
		return nil, fmt.Errorf("listing budget entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ledger.BudgetEntry
	for rows.Next() {
		var (
			e      ledger.BudgetEntry
			descr  sql.NullString
			amount sql.NullFloat64
		)
		if err := rows.Scan(&e.BudgetPeriod, &e.FundCode, &e.ProgramCode, &e.ProjectID, &e.ActivityID, &descr, &amount); err != nil {
			return nil, fmt.Errorf("scanning budget entry: %w", err)
		}
		e.LineDescr = descr.String
		e.MonetaryAmount = amount.Float64
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
