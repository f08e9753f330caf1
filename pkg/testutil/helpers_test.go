package testutil

import (
	"context"
	"testing"

	"github.com/iwvelando/construction-projection/internal/ledger"
)

func TestFindEntries(t *testing.T) {
	entries := []ledger.SourceEntry{
		{Resource: "0920", FlowType: "JPALEASE", FiscalYear: "2025", Amount: 500000},
		{Resource: "0920", FlowType: "JPALEASE", FiscalYear: "2025", Amount: -30000000},
		{Resource: "0920", FlowType: "JPALEASE", FiscalYear: "2026", Amount: 500000},
	}

	tests := []struct {
		name     string
		year     string
		resource string
		expected int
	}{
		{"Duplicate rows both returned", "2025", "0920", 2},
		{"Single row", "2026", "0920", 1},
		{"Unknown resource", "2025", "0916", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindEntries(entries, "JPALEASE", tt.year, tt.resource)
			if len(got) != tt.expected {
				t.Errorf("FindEntries() returned %d entries, expected %d", len(got), tt.expected)
			}
		})
	}
}

func TestFindEntry(t *testing.T) {
	entries := []ledger.SourceEntry{
		{Resource: "0920", FlowType: "JPALEASE", FiscalYear: "2025", Amount: 500000},
		{Resource: "0920", FlowType: "JPALEASE", FiscalYear: "2025", Amount: -30000000},
	}

	e := FindEntry(entries, "JPALEASE", "2025", "0920")
	if e == nil {
		t.Fatal("FindEntry() returned nil")
	}
	if e.Amount != 500000 {
		t.Errorf("FindEntry() returned amount %v, expected first match 500000", e.Amount)
	}

	if FindEntry(entries, "COSTS", "2025", "0920") != nil {
		t.Error("FindEntry() should return nil when nothing matches")
	}
}

func TestOpenStore(t *testing.T) {
	s := OpenStore(t)
	if s.Driver() != "sqlite" {
		t.Errorf("Driver() = %q, expected sqlite", s.Driver())
	}
	rows, err := s.ListStaticRows(context.Background())
	if err != nil {
		t.Fatalf("ListStaticRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("new store should have no static rows, got %d", len(rows))
	}
}
