// Package testutil provides common utility functions for testing.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/internal/store"
)

// OpenStore opens a SQLite ledger in a per-test temporary directory. The
// store is closed when the test finishes.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "construction.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})
	return s
}

// FindEntries returns every entry matching flowType, year and resource.
func FindEntries(entries []ledger.SourceEntry, flowType, year, resource string) []ledger.SourceEntry {
	var out []ledger.SourceEntry
	for _, e := range entries {
		if e.FlowType == flowType && e.FiscalYear == year && e.Resource == resource {
			out = append(out, e)
		}
	}
	return out
}

// FindEntry returns the first entry matching flowType, year and resource,
// or nil when there is none.
func FindEntry(entries []ledger.SourceEntry, flowType, year, resource string) *ledger.SourceEntry {
	for i := range entries {
		e := &entries[i]
		if e.FlowType == flowType && e.FiscalYear == year && e.Resource == resource {
			return e
		}
	}
	return nil
}
