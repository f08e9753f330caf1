package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

// ListStaticRows returns every static row in insertion order.
func (o ops) ListStaticRows(ctx context.Context) ([]ledger.StaticRow, error) {
	rows, err := o.query(ctx, `SELECT id, resource, flow_type, fiscal_year, flow_source, amount
		FROM construction_static_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing static rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ledger.StaticRow
	for rows.Next() {
		var r ledger.StaticRow
		if err := rows.Scan(&r.ID, &r.Resource, &r.FlowType, &r.FiscalYear, &r.FlowSource, &r.Amount); err != nil {
			return nil, fmt.Errorf("scanning static row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetStaticRow returns the static row with the given id or ledger.ErrNotFound.
func (o ops) GetStaticRow(ctx context.Context, id int64) (ledger.StaticRow, error) {
	var r ledger.StaticRow
	err := o.queryRow(ctx, `SELECT id, resource, flow_type, fiscal_year, flow_source, amount
		FROM construction_static_rows WHERE id = ?`, id).
		Scan(&r.ID, &r.Resource, &r.FlowType, &r.FiscalYear, &r.FlowSource, &r.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.StaticRow{}, fmt.Errorf("static row %d: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return ledger.StaticRow{}, fmt.Errorf("reading static row %d: %w", id, err)
	}
	return r, nil
}

// CreateStaticRow inserts a static row and returns it with its assigned id.
func (o ops) CreateStaticRow(ctx context.Context, row ledger.StaticRow) (ledger.StaticRow, error) {
	err := o.queryRow(ctx, `INSERT INTO construction_static_rows
		(resource, flow_type, fiscal_year, flow_source, amount)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		row.Resource, row.FlowType, row.FiscalYear, row.FlowSource, row.Amount,
	).Scan(&row.ID)
	if err != nil {
		return ledger.StaticRow{}, fmt.Errorf("creating static row: %w", err)
	}
	return row, nil
}

// UpdateStaticRow replaces every field of the static row identified by row.ID.
func (o ops) UpdateStaticRow(ctx context.Context, row ledger.StaticRow) error {
	res, err := o.exec(ctx, `UPDATE construction_static_rows
		SET resource = ?, flow_type = ?, fiscal_year = ?, flow_source = ?, amount = ?
		WHERE id = ?`,
		row.Resource, row.FlowType, row.FiscalYear, row.FlowSource, row.Amount, row.ID,
	)
	if err != nil {
		return fmt.Errorf("updating static row %d: %w", row.ID, err)
	}
	return requireAffected(res, fmt.Sprintf("static row %d", row.ID))
}

// DeleteStaticRow removes the static row with the given id.
func (o ops) DeleteStaticRow(ctx context.Context, id int64) error {
	res, err := o.exec(ctx, `DELETE FROM construction_static_rows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting static row %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("static row %d", id))
}

// SeedStaticRows inserts rows only when the static row table is empty. It
// returns the number of rows inserted.
func (s *Store) SeedStaticRows(ctx context.Context, rows []ledger.StaticRow) (int, error) {
	inserted := 0
	err := s.inTx(ctx, func(o ops) error {
		var count int
		if err := o.queryRow(ctx, `SELECT COUNT(*) FROM construction_static_rows`).Scan(&count); err != nil {
			return fmt.Errorf("counting static rows: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, r := range rows {
			if _, err := o.CreateStaticRow(ctx, r); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
