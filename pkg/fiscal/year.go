// Package fiscal provides fiscal year utility functions.
package fiscal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/construction-projection/pkg/constants"
)

// ParseYear converts a fiscal year string such as "2025" into its integer form.
// Surrounding whitespace is tolerated.
func ParseYear(year string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, fmt.Errorf("invalid fiscal year %q: %w", year, err)
	}
	return n, nil
}

// FormatYear renders an integer year as a fiscal year string.
func FormatYear(year int) string {
	return strconv.Itoa(year)
}

// PreviousYear returns the fiscal year immediately before the given one.
func PreviousYear(year string) (string, error) {
	n, err := ParseYear(year)
	if err != nil {
		return "", err
	}
	return FormatYear(n - 1), nil
}

// IsCanonical reports whether year is exactly four ASCII digits.
func IsCanonical(year string) bool {
	if len(year) != constants.FiscalYearDigits {
		return false
	}
	for i := 0; i < len(year); i++ {
		if year[i] < '0' || year[i] > '9' {
			return false
		}
	}
	return true
}

// SortedUnique returns the distinct years in ascending lexical order. For
// four-digit years this matches numeric order.
func SortedUnique(years []string) []string {
	set := make(map[string]struct{}, len(years))
	for _, y := range years {
		set[y] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}
