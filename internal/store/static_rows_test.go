package store

import (
	"context"
	"errors"
	"testing"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

func TestStaticRowsCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created, err := s.CreateStaticRow(ctx, ledger.StaticRow{
		Resource: "0916", FlowType: ledger.FlowTypeProceeds, FiscalYear: "2025", FlowSource: ledger.FlowSourceProjected, Amount: 80000000,
	})
	if err != nil {
		t.Fatalf("CreateStaticRow() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := s.GetStaticRow(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStaticRow() error = %v", err)
	}
	if got != created {
		t.Errorf("GetStaticRow() = %+v, expected %+v", got, created)
	}

	got.Amount = 75000000
	got.FiscalYear = "2026"
	if err := s.UpdateStaticRow(ctx, got); err != nil {
		t.Fatalf("UpdateStaticRow() error = %v", err)
	}
	updated, err := s.GetStaticRow(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStaticRow() error = %v", err)
	}
	if updated.Amount != 75000000 || updated.FiscalYear != "2026" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := s.DeleteStaticRow(ctx, created.ID); err != nil {
		t.Fatalf("DeleteStaticRow() error = %v", err)
	}
	if _, err := s.GetStaticRow(ctx, created.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.UpdateStaticRow(ctx, updated); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound updating deleted row, got %v", err)
	}
	if err := s.DeleteStaticRow(ctx, created.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSeedStaticRowsOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n, err := s.SeedStaticRows(ctx, ledger.DefaultStaticRows())
	if err != nil {
		t.Fatalf("SeedStaticRows() error = %v", err)
	}
	if n != 15 {
		t.Fatalf("expected 15 seeded rows, got %d", n)
	}

	n, err = s.SeedStaticRows(ctx, ledger.DefaultStaticRows())
	if err != nil {
		t.Fatalf("SeedStaticRows() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("expected second seed to be a no-op, got %d", n)
	}

	rows, err := s.ListStaticRows(ctx)
	if err != nil {
		t.Fatalf("ListStaticRows() error = %v", err)
	}
	if len(rows) != 15 {
		t.Fatalf("expected 15 rows, got %d", len(rows))
	}
	if rows[0].Resource != "0916" || rows[0].FlowType != ledger.FlowTypeProceeds {
		t.Errorf("expected insertion order preserved, first row %+v", rows[0])
	}
}
