package mathutil

import (
	"math"
	"testing"
)

func TestRoundToHundred(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Below midpoint rounds down", 22.5, 0},
		{"Above midpoint rounds up", 112.5 + 50, 200},
		{"Midpoint rounds to even (up)", 150, 200},
		{"Midpoint rounds to even (down)", 250, 200},
		{"Already a hundred", 1200000, 1200000},
		{"Float noise is absorbed", 2436000.0000000002, 2436000},
		{"Negative value", -1249, -1200},
		{"Negative midpoint rounds to even", -350, -400},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundToHundred(tt.input)
			if result != tt.expected {
				t.Errorf("RoundToHundred(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundBank(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int32
		expected float64
	}{
		{"Two decimals", 1.235, 2, 1.24},
		{"Two decimals half even", 1.225, 2, 1.22},
		{"Tens", 45, -1, 40},
		{"Thousands", 1500, -3, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundBank(tt.input, tt.places)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RoundBank(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestRoundBankNonFinite(t *testing.T) {
	if !math.IsNaN(RoundBank(math.NaN(), 2)) {
		t.Error("expected NaN to pass through")
	}
	if !math.IsInf(RoundBank(math.Inf(1), -2), 1) {
		t.Error("expected +Inf to pass through")
	}
}

func TestMidpoint(t *testing.T) {
	if got := Midpoint(350, 100); got != 225 {
		t.Errorf("Midpoint(350, 100) = %v, expected 225", got)
	}
	if got := Midpoint(-10, 10); got != 0 {
		t.Errorf("Midpoint(-10, 10) = %v, expected 0", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal", 1, 1, 0, true},
		{"Inside", 1.001, 1, 0.01, true},
		{"Outside", 1.1, 1, 0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}
