package projection

import (
	"context"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/fiscal"
	"github.com/iwvelando/construction-projection/pkg/mathutil"
)

// AggregateCosts turns non-zero budget totals into projected COSTS entries.
// Zero totals carry no interest or balance effect and are dropped.
func AggregateCosts(totals []ledger.BudgetTotal) []ledger.SourceEntry {
	entries := make([]ledger.SourceEntry, 0, len(totals))
	for _, t := range totals {
		if t.Amount == 0 {
			continue
		}
		entries = append(entries, projected(t.ProgramCode, ledger.FlowTypeCosts, fiscal.FormatYear(t.Period), t.Amount))
	}
	return entries
}

// ListYears returns the sorted union of budget periods and static row years.
// Zero-sum budget groups still contribute their year.
func ListYears(totals []ledger.BudgetTotal, rows []ledger.StaticRow) []string {
	years := make([]string, 0, len(totals)+len(rows))
	for _, t := range totals {
		years = append(years, fiscal.FormatYear(t.Period))
	}
	for _, r := range rows {
		years = append(years, r.FiscalYear)
	}
	return fiscal.SortedUnique(years)
}

// ListResources returns the sorted union of budget program codes and static
// row resources.
func ListResources(totals []ledger.BudgetTotal, rows []ledger.StaticRow) []string {
	resources := make([]string, 0, len(totals)+len(rows))
	for _, t := range totals {
		resources = append(resources, t.ProgramCode)
	}
	for _, r := range rows {
		resources = append(resources, r.Resource)
	}
	return fiscal.SortedUnique(resources)
}

// ComputeInterest averages the beginning and ending balance of the year and
// applies rate, rounded to the nearest hundred.
func ComputeInterest(beg, cost, proceeds, rate float64) float64 {
	end := beg + cost + proceeds
	return mathutil.RoundToHundred(mathutil.Midpoint(end, beg) * rate)
}

// amount returns the first matching amount, or zero when none exists.
func amount(ctx context.Context, tx ledger.Tx, flowType, year, resource string) (float64, error) {
	v, _, err := tx.SourceAmount(ctx, flowType, year, resource)
	return v, err
}

// CalcInterest computes the year's interest for resource and records it when
// positive. Zero and negative interest are not recorded. It returns the
// computed value either way.
func CalcInterest(ctx context.Context, tx ledger.Tx, year, resource string, rate float64) (float64, error) {
	prev, err := fiscal.PreviousYear(year)
	if err != nil {
		return 0, err
	}
	cost, err := amount(ctx, tx, ledger.FlowTypeCosts, year, resource)
	if err != nil {
		return 0, err
	}
	beg, err := amount(ctx, tx, ledger.FlowTypeEndEquity, prev, resource)
	if err != nil {
		return 0, err
	}
	proceeds, err := amount(ctx, tx, ledger.FlowTypeProceeds, year, resource)
	if err != nil {
		return 0, err
	}

	interest := ComputeInterest(beg, cost, proceeds, rate)
	if interest > 0 {
		err := tx.InsertSourceEntries(ctx, []ledger.SourceEntry{
			projected(resource, ledger.FlowTypeInterest, year, interest),
		})
		if err != nil {
			return 0, err
		}
	}
	return interest, nil
}

// CalcBalance records BEG_EQUITY as the prior year's END_EQUITY, then
// END_EQUITY as the sum of every entry for the resource and year so far.
func CalcBalance(ctx context.Context, tx ledger.Tx, year, resource string) (beg, end float64, err error) {
	prev, err := fiscal.PreviousYear(year)
	if err != nil {
		return 0, 0, err
	}
	beg, err = amount(ctx, tx, ledger.FlowTypeEndEquity, prev, resource)
	if err != nil {
		return 0, 0, err
	}
	if err := tx.InsertSourceEntries(ctx, []ledger.SourceEntry{
		projected(resource, ledger.FlowTypeBegEquity, year, beg),
	}); err != nil {
		return 0, 0, err
	}

	end, err = tx.SourceSum(ctx, resource, year)
	if err != nil {
		return 0, 0, err
	}
	if err := tx.InsertSourceEntries(ctx, []ledger.SourceEntry{
		projected(resource, ledger.FlowTypeEndEquity, year, end),
	}); err != nil {
		return 0, 0, err
	}
	return beg, end, nil
}

func projected(resource, flowType, year string, amount float64) ledger.SourceEntry {
	return ledger.SourceEntry{
		Resource:   resource,
		FlowType:   flowType,
		FiscalYear: year,
		FlowSource: ledger.FlowSourceProjected,
		Amount:     amount,
	}
}
