package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1200000, "$1,200,000.00"},
		{-29500000, "-$29,500,000.00"},
		{-0.004, "-$0.00"},
	}
	for _, tt := range tests {
		if got := Currency(tt.input); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{999.999, "1,000.00"},
		{83636000, "83,636,000.00"},
		{-1234.56, "-1,234.56"},
	}
	for _, tt := range tests {
		if got := NumericCurrency(tt.input); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
