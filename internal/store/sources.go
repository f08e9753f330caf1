package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

// DeleteSourceEntries removes every source entry with the given flow source.
func (o ops) DeleteSourceEntries(ctx context.Context, flowSource string) (int64, error) {
	res, err := o.exec(ctx, `DELETE FROM construction_sources WHERE flow_source = ?`, flowSource)
	if err != nil {
		return 0, fmt.Errorf("deleting %s source entries: %w", flowSource, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted source entries: %w", err)
	}
	return n, nil
}

// InsertSourceEntries writes each entry immediately, in order.
func (o ops) InsertSourceEntries(ctx context.Context, entries []ledger.SourceEntry) error {
	for _, e := range entries {
		_, err := o.exec(ctx, `INSERT INTO construction_sources
			(resource, flow_type, fiscal_year, flow_source, amount)
			VALUES (?, ?, ?, ?, ?)`,
			e.Resource, e.FlowType, e.FiscalYear, e.FlowSource, e.Amount,
		)
		if err != nil {
			return fmt.Errorf("inserting %s/%s/%s source entry: %w", e.Resource, e.FlowType, e.FiscalYear, err)
		}
	}
	return nil
}

// SourceAmount returns the amount of the earliest inserted entry matching the
// flow type, year, and resource. Later duplicates are ignored.
func (o ops) SourceAmount(ctx context.Context, flowType, fiscalYear, resource string) (float64, bool, error) {
	rows, err := o.query(ctx, `SELECT amount FROM construction_sources
		WHERE flow_type = ? AND fiscal_year = ? AND resource = ?
		ORDER BY id LIMIT 1`, flowType, fiscalYear, resource)
	if err != nil {
		return 0, false, fmt.Errorf("querying %s amount: %w", flowType, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	var amount float64
	if err := rows.Scan(&amount); err != nil {
		return 0, false, fmt.Errorf("scanning %s amount: %w", flowType, err)
	}
	return amount, true, rows.Err()
}

// SourceSum sums every entry for the resource and year, across flow types.
func (o ops) SourceSum(ctx context.Context, resource, fiscalYear string) (float64, error) {
	var total float64
	err := o.queryRow(ctx, `SELECT COALESCE(SUM(amount), 0.0) FROM construction_sources
		WHERE resource = ? AND fiscal_year = ?`, resource, fiscalYear).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing %s/%s source entries: %w", resource, fiscalYear, err)
	}
	return total, nil
}

// ListSourceEntries returns the entries matching the filter ordered by
// resource, fiscal year, and insertion order.
func (o ops) ListSourceEntries(ctx context.Context, filter ledger.SourceFilter) ([]ledger.SourceEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.FlowSource != "" {
		where = append(where, "flow_source = ?")
		args = append(args, filter.FlowSource)
	}
	if filter.Resource != "" {
		where = append(where, "resource = ?")
		args = append(args, filter.Resource)
	}
	if filter.FiscalYear != "" {
		where = append(where, "fiscal_year = ?")
		args = append(args, filter.FiscalYear)
	}

	q := `SELECT id, resource, flow_type, fiscal_year, flow_source, amount FROM construction_sources`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY resource, fiscal_year, id"

	rows, err := o.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing source entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ledger.SourceEntry
	for rows.Next() {
		var e ledger.SourceEntry
		if err := rows.Scan(&e.ID, &e.Resource, &e.FlowType, &e.FiscalYear, &e.FlowSource, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning source entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
