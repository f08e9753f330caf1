package budgetfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/construction-projection/pkg/validation"
)

const sampleBudget = `
entries:
  - budgetPeriod: 2025
    fundCode: F100
    programCode: "0916"
    projectId: P-1
    activityId: A-1
    lineDescr: Site work
    monetaryAmount: 1500000
  - budgetPeriod: 2026
    fundCode: F100
    programCode: "0930"
    projectId: P-2
    activityId: A-1
    monetaryAmount: -250.5
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleBudget))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, expected 2", len(entries))
	}

	first := entries[0]
	if first.BudgetPeriod != 2025 || first.ProgramCode != "0916" || first.LineDescr != "Site work" || first.MonetaryAmount != 1500000 {
		t.Errorf("first entry = %+v", first)
	}
	second := entries[1]
	if second.LineDescr != "" || second.MonetaryAmount != -250.5 {
		t.Errorf("second entry = %+v", second)
	}
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Parse() returned %d entries for an empty file", len(entries))
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("entries:\n  - budgetPeriod: 2025\n    amount: 5\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseRejectsIncompleteEntry(t *testing.T) {
	_, err := Parse(strings.NewReader("entries:\n  - budgetPeriod: 2025\n    programCode: \"0916\"\n"))
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("Parse() error = %v, expected validation.ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error %q should identify the entry", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.yaml")
	if err := os.WriteFile(path, []byte(sampleBudget), 0o600); err != nil {
		t.Fatalf("failed to write budget file: %v", err)
	}
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Load() returned %d entries, expected 2", len(entries))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
