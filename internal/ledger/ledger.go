// Package ledger defines the construction budget ledger records and the
// storage contract the projection engine runs against.
package ledger

import (
	"context"
	"errors"
	"time"
)

// Flow types recorded in the source ledger.
const (
	FlowTypeCosts     = "COSTS"
	FlowTypeProceeds  = "PROCEEDS"
	FlowTypeInterest  = "INTEREST"
	FlowTypeBegEquity = "BEG_EQUITY"
	FlowTypeEndEquity = "END_EQUITY"
	FlowTypeJPALease  = "JPALEASE"
	FlowTypeDevFees   = "DEVFEES"
	FlowTypeStabilize = "STABILIZE"
)

// Flow sources distinguish engine output from externally fed rows.
const (
	FlowSourceProjected = "PROJECTED"
	FlowSourceActual    = "ACTUAL"
)

// Named settings read by the projection engine, with their defaults.
const (
	SettingPriorYear    = "PRIOR_YEAR"
	SettingInterestRate = "INT_RATE"

	DefaultPriorYear    = "2024"
	DefaultInterestRate = "0.03"
)

// ErrNotFound is returned when a requested setting or static row does not exist.
var ErrNotFound = errors.New("not found")

// SourceEntry is one row of the construction source ledger.
type SourceEntry struct {
	ID         int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Resource   string  `json:"resource" yaml:"resource"`
	FlowType   string  `json:"flowType" yaml:"flowType"`
	FiscalYear string  `json:"fiscalYear" yaml:"fiscalYear"`
	FlowSource string  `json:"flowSource" yaml:"flowSource"`
	Amount     float64 `json:"amount" yaml:"amount"`
}

// StaticRow is a user-maintained seed entry carried into every projection run.
type StaticRow struct {
	ID         int64   `json:"id" yaml:"id,omitempty"`
	Resource   string  `json:"resource" yaml:"resource"`
	FlowType   string  `json:"flowType" yaml:"flowType"`
	FiscalYear string  `json:"fiscalYear" yaml:"fiscalYear"`
	FlowSource string  `json:"flowSource" yaml:"flowSource"`
	Amount     float64 `json:"amount" yaml:"amount"`
}

// Entry converts the static row into the source entry it seeds.
func (r StaticRow) Entry() SourceEntry {
	return SourceEntry{
		Resource:   r.Resource,
		FlowType:   r.FlowType,
		FiscalYear: r.FiscalYear,
		FlowSource: r.FlowSource,
		Amount:     r.Amount,
	}
}

// BudgetEntry is a budgeted line owned by the external budgeting process.
type BudgetEntry struct {
	BudgetPeriod   int     `json:"budgetPeriod" yaml:"budgetPeriod"`
	FundCode       string  `json:"fundCode" yaml:"fundCode"`
	ProgramCode    string  `json:"programCode" yaml:"programCode"`
	ProjectID      string  `json:"projectId" yaml:"projectId"`
	ActivityID     string  `json:"activityId" yaml:"activityId"`
	LineDescr      string  `json:"lineDescr,omitempty" yaml:"lineDescr,omitempty"`
	MonetaryAmount float64 `json:"monetaryAmount" yaml:"monetaryAmount"`
}

// BudgetTotal is the sum of budget entries for one period and program.
type BudgetTotal struct {
	Period      int
	ProgramCode string
	Amount      float64
}

// Setting is a named configuration value.
type Setting struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// SourceFilter narrows source ledger listings. Empty fields match everything.
type SourceFilter struct {
	FlowSource string
	Resource   string
	FiscalYear string
}

// RunRecord captures the outcome of one projection run.
type RunRecord struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	Entries    int       `json:"entries"`
}

// Tx is the set of store operations a projection run performs. Writes must be
// visible to later reads through the same Tx.
type Tx interface {
	// GetSetting returns the named setting value, or def when it is absent.
	GetSetting(ctx context.Context, name, def string) (string, error)
	// DeleteSourceEntries removes every source entry with the given flow source.
	DeleteSourceEntries(ctx context.Context, flowSource string) (int64, error)
	InsertSourceEntries(ctx context.Context, entries []SourceEntry) error
	// QueryBudgetTotals sums budget entries with a period strictly after
	// afterPeriod and a program code in programs, grouped by period and program.
	QueryBudgetTotals(ctx context.Context, afterPeriod int, programs []string) ([]BudgetTotal, error)
	// SourceAmount returns the first matching entry's amount.
	SourceAmount(ctx context.Context, flowType, fiscalYear, resource string) (float64, bool, error)
	// SourceSum sums all entries for a resource and year across flow types.
	SourceSum(ctx context.Context, resource, fiscalYear string) (float64, error)
	ListStaticRows(ctx context.Context) ([]StaticRow, error)
}

// Store runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type Store interface {
	WithinTransaction(ctx context.Context, fn func(Tx) error) error
}

// RunRecorder persists projection run history.
type RunRecorder interface {
	RecordRun(ctx context.Context, run RunRecord) error
}
