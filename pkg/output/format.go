// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/format"
)

// PrettyFormat writes a human-readable table per resource, ordered by
// fiscal year and insertion order.
func PrettyFormat(w io.Writer, entries []ledger.SourceEntry) {
	groups, resources := groupByResource(entries)
	for i, resource := range resources {
		fmt.Fprintf(w, "--- Ledger for resource %s ---\n", resource)
		fmt.Fprintf(w, "Year | Flow Type    | Source    | Amount\n")
		fmt.Fprintf(w, "____ | ____________ | _________ | ______\n")
		for _, e := range groups[resource] {
			fmt.Fprintf(w, "%s | %-12s | %-9s | %s\n", e.FiscalYear, e.FlowType, e.FlowSource, format.Currency(e.Amount))
		}
		if i < len(resources)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes entries in comma-separated value format with a header row.
func CsvFormat(w io.Writer, entries []ledger.SourceEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"resource", "flow_type", "fiscal_year", "flow_source", "amount"}); err != nil {
		return err
	}
	groups, resources := groupByResource(entries)
	for _, resource := range resources {
		for _, e := range groups[resource] {
			record := []string{e.Resource, e.FlowType, e.FiscalYear, e.FlowSource, fmt.Sprintf("%.2f", e.Amount)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func groupByResource(entries []ledger.SourceEntry) (map[string][]ledger.SourceEntry, []string) {
	groups := make(map[string][]ledger.SourceEntry)
	for _, e := range entries {
		groups[e.Resource] = append(groups[e.Resource], e)
	}
	resources := make([]string, 0, len(groups))
	for r, g := range groups {
		resources = append(resources, r)
		sort.SliceStable(g, func(i, j int) bool {
			if g[i].FiscalYear != g[j].FiscalYear {
				return g[i].FiscalYear < g[j].FiscalYear
			}
			return g[i].ID < g[j].ID
		})
	}
	sort.Strings(resources)
	return groups, resources
}
