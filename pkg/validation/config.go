// Package validation provides configuration and ledger input validation.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/fiscal"
	"github.com/shopspring/decimal"
)

// ErrInvalid marks input rejected by validation.
var ErrInvalid = errors.New("invalid input")

// Column widths of the ledger tables.
const (
	maxResourceLen   = 10
	maxFlowTypeLen   = 50
	maxFlowSourceLen = 50
	maxSettingLen    = 64
)

// ParsePriorYear parses the PRIOR_YEAR setting as an integer year.
func ParsePriorYear(value string) (int, error) {
	year, err := fiscal.ParseYear(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s setting: %v", ErrInvalid, ledger.SettingPriorYear, err)
	}
	return year, nil
}

// ParseInterestRate parses the INT_RATE setting as a decimal fraction, e.g. "0.03".
func ParseInterestRate(value string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s setting %q: %v", ErrInvalid, ledger.SettingInterestRate, value, err)
	}
	return rate, nil
}

// ValidateSetting checks a setting name and, for settings the projection
// engine reads, that its value parses.
func ValidateSetting(s ledger.Setting) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("%w: setting name cannot be empty", ErrInvalid)
	}
	if len(name) > maxSettingLen {
		return fmt.Errorf("%w: setting name exceeds %d characters", ErrInvalid, maxSettingLen)
	}

	switch name {
	case ledger.SettingPriorYear:
		_, err := ParsePriorYear(s.Value)
		return err
	case ledger.SettingInterestRate:
		_, err := ParseInterestRate(s.Value)
		return err
	}
	return nil
}

// ValidateStaticRow checks the fields of a static row.
func ValidateStaticRow(r ledger.StaticRow) error {
	var problems []string

	problems = appendFieldProblem(problems, "resource", r.Resource, maxResourceLen)
	problems = appendFieldProblem(problems, "flowType", r.FlowType, maxFlowTypeLen)
	problems = appendFieldProblem(problems, "flowSource", r.FlowSource, maxFlowSourceLen)
	if !fiscal.IsCanonical(r.FiscalYear) {
		problems = append(problems, fmt.Sprintf("fiscalYear must be a four digit year, got %q", r.FiscalYear))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func appendFieldProblem(problems []string, field, value string, maxLen int) []string {
	switch {
	case strings.TrimSpace(value) == "":
		return append(problems, field+" cannot be empty")
	case len(value) > maxLen:
		return append(problems, fmt.Sprintf("%s exceeds %d characters", field, maxLen))
	}
	return problems
}

// ValidateBudgetEntry checks that every key column of a budget entry is set.
func ValidateBudgetEntry(e ledger.BudgetEntry) error {
	var problems []string
	if e.BudgetPeriod <= 0 {
		problems = append(problems, fmt.Sprintf("budgetPeriod must be positive, got %d", e.BudgetPeriod))
	}
	for _, f := range []struct{ name, value string }{
		{"fundCode", e.FundCode},
		{"programCode", e.ProgramCode},
		{"projectId", e.ProjectID},
		{"activityId", e.ActivityID},
	} {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" cannot be empty")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
