package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/construction-projection/internal/config"
	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/internal/store"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		expectErr bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", config.LoggingConfig{Level: "loud"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if tt.expectErr {
				if err == nil {
					t.Error("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() unexpected error = %v", err)
			}
			if logger == nil {
				t.Fatal("initializeLogger() returned nil logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "projection.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

// newTestConfig writes a config pointing at a temporary SQLite database.
func newTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  dsn: " + filepath.Join(dir, "construction.db") + "\n" +
		"logging:\n  level: error\n  format: json\n  outputFile: " + filepath.Join(dir, "projection.log") + "\n" +
		"server:\n  passphrase: secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedRunReport(t *testing.T) {
	cfg := newTestConfig(t)

	out, err := execute(t, "--config", cfg, "seed")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if !strings.Contains(out, "seeded 15 static rows and 2 settings") {
		t.Errorf("seed output = %q", out)
	}

	out, err = execute(t, "--config", cfg, "seed")
	if err != nil {
		t.Fatalf("second seed error = %v", err)
	}
	if !strings.Contains(out, "seeded 0 static rows and 0 settings") {
		t.Errorf("second seed output = %q", out)
	}

	out, err = execute(t, "--config", cfg, "run")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if strings.TrimSpace(out) != "Success" {
		t.Errorf("run output = %q", out)
	}

	out, err = execute(t, "--config", cfg, "report", "--output-format", "csv", "--resource", "0916", "--fiscal-year", "2025")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("report output is not CSV: %v", err)
	}
	found := false
	for _, r := range records[1:] {
		if r[1] == "END_EQUITY" {
			found = true
			if r[4] != "81200000.00" {
				t.Errorf("END_EQUITY 0916/2025 = %s, expected 81200000.00", r[4])
			}
		}
	}
	if !found {
		t.Errorf("report missing END_EQUITY row: %v", records)
	}

	out, err = execute(t, "--config", cfg, "report")
	if err != nil {
		t.Fatalf("pretty report error = %v", err)
	}
	if !strings.Contains(out, "--- Ledger for resource 0905 ---") {
		t.Errorf("pretty report output = %q", out)
	}
}

func TestReportRejectsUnknownFormat(t *testing.T) {
	cfg := newTestConfig(t)
	if _, err := execute(t, "--config", cfg, "report", "--output-format", "json"); err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}

func TestRunFailureReturnsError(t *testing.T) {
	cfg := newTestConfig(t)
	conf, err := config.LoadConfiguration(cfg)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// An unparseable PRIOR_YEAR makes the run fail.
	s, err := store.Open(context.Background(), store.Config{DSN: conf.Database.DSN})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	err = s.UpsertSetting(context.Background(), ledger.Setting{Name: ledger.SettingPriorYear, Value: "next year"})
	_ = s.Close()
	if err != nil {
		t.Fatalf("UpsertSetting() error = %v", err)
	}

	out, err := execute(t, "--config", cfg, "run")
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if !strings.HasPrefix(out, "Failed: ") || !strings.Contains(out, "PRIOR_YEAR") {
		t.Errorf("run output = %q", out)
	}
}

func TestImportBudget(t *testing.T) {
	cfg := newTestConfig(t)
	budget := filepath.Join(t.TempDir(), "budget.yaml")
	content := `entries:
  - budgetPeriod: 2025
    fundCode: F100
    programCode: "0916"
    projectId: P-1
    activityId: A-1
    monetaryAmount: 1000
  - budgetPeriod: 2026
    fundCode: F100
    programCode: "0916"
    projectId: P-1
    activityId: A-1
    monetaryAmount: 2000
`
	if err := os.WriteFile(budget, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write budget: %v", err)
	}

	out, err := execute(t, "--config", cfg, "import-budget", budget)
	if err != nil {
		t.Fatalf("import-budget error = %v", err)
	}
	if !strings.Contains(out, "imported 2 budget entries") {
		t.Errorf("import output = %q", out)
	}

	if _, err := execute(t, "--config", cfg, "run"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	out, err = execute(t, "--config", cfg, "report", "--output-format", "csv", "--fiscal-year", "2026")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	if !strings.Contains(out, "0916,COSTS,2026,PROJECTED,2000.00") {
		t.Errorf("report missing imported cost: %q", out)
	}
}

func TestImportBudgetRequiresFile(t *testing.T) {
	cfg := newTestConfig(t)
	if _, err := execute(t, "--config", cfg, "import-budget"); err == nil {
		t.Fatal("expected error without a file argument")
	}
	if _, err := execute(t, "--config", cfg, "import-budget", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestConfigShowRedactsPassphrase(t *testing.T) {
	cfg := newTestConfig(t)
	out, err := execute(t, "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("passphrase leaked: %q", out)
	}
	if !strings.Contains(out, "passphrase: '********'") && !strings.Contains(out, `passphrase: "********"`) {
		t.Errorf("config show output = %q", out)
	}
	if !strings.Contains(out, "construction.db") {
		t.Errorf("config show missing dsn: %q", out)
	}
}

func TestInvalidConfigurationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "run"); err == nil {
		t.Fatal("expected error for invalid configuration")
	}
}
