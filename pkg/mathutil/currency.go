// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundToHundred rounds a value to the nearest hundred, resolving exact
// midpoints to the even hundred (150 -> 200, 250 -> 200).
func RoundToHundred(val float64) float64 {
	return RoundBank(val, constants.InterestRoundingPlaces)
}

// RoundBank rounds val half-to-even at the given number of decimal places.
// Negative places round the integer part, e.g. -2 rounds to hundreds.
func RoundBank(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).RoundBank(places).InexactFloat64()
}

// Midpoint returns the average of two balances.
func Midpoint(a, b float64) float64 {
	return (a + b) / 2
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
