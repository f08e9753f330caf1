package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

// GetSetting returns the stored value for name, or def when no row exists.
func (o ops) GetSetting(ctx context.Context, name, def string) (string, error) {
	setting, err := o.LookupSetting(ctx, name)
	if errors.Is(err, ledger.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// LookupSetting returns the named setting or ledger.ErrNotFound.
func (o ops) LookupSetting(ctx context.Context, name string) (ledger.Setting, error) {
	s := ledger.Setting{Name: name}
	err := o.queryRow(ctx, `SELECT value FROM construction_settings WHERE name = ?`, name).Scan(&s.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Setting{}, fmt.Errorf("setting %s: %w", name, ledger.ErrNotFound)
	}
	if err != nil {
		return ledger.Setting{}, fmt.Errorf("reading setting %s: %w", name, err)
	}
	return s, nil
}

// ListSettings returns every setting ordered by name.
func (o ops) ListSettings(ctx context.Context) ([]ledger.Setting, error) {
	rows, err := o.query(ctx, `SELECT name, value FROM construction_settings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var settings []ledger.Setting
	for rows.Next() {
		var s ledger.Setting
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpsertSetting creates the setting or replaces its value.
func (o ops) UpsertSetting(ctx context.Context, setting ledger.Setting) error {
	_, err := o.exec(ctx, `INSERT INTO construction_settings (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value`, setting.Name, setting.Value)
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", setting.Name, err)
	}
	return nil
}

// UpdateSetting changes the value of an existing setting.
func (o ops) UpdateSetting(ctx context.Context, setting ledger.Setting) error {
	res, err := o.exec(ctx, `UPDATE construction_settings SET value = ? WHERE name = ?`, setting.Value, setting.Name)
	if err != nil {
		return fmt.Errorf("updating setting %s: %w", setting.Name, err)
	}
	return requireAffected(res, "setting "+setting.Name)
}

// DeleteSetting removes the named setting.
func (o ops) DeleteSetting(ctx context.Context, name string) error {
	res, err := o.exec(ctx, `DELETE FROM construction_settings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", name, err)
	}
	return requireAffected(res, "setting "+name)
}

// SeedSettings inserts each setting that does not already exist and reports
// how many were added.
func (o ops) SeedSettings(ctx context.Context, settings []ledger.Setting) (int, error) {
	added := 0
	for _, s := range settings {
		res, err := o.exec(ctx, `INSERT INTO construction_settings (name, value) VALUES (?, ?)
			ON CONFLICT (name) DO NOTHING`, s.Name, s.Value)
		if err != nil {
			return added, fmt.Errorf("seeding setting %s: %w", s.Name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	return added, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ledger.ErrNotFound)
	}
	return nil
}
