package fiscal

import (
	"reflect"
	"testing"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{"Four digits", "2024", 2024, false},
		{"Whitespace tolerated", " 2030 ", 2030, false},
		{"Empty", "", 0, true},
		{"Not a number", "FY25", 0, true},
		{"Decimal", "2024.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseYear(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseYear(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseYear(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPreviousYear(t *testing.T) {
	got, err := PreviousYear("2025")
	if err != nil {
		t.Fatalf("PreviousYear() error = %v", err)
	}
	if got != "2024" {
		t.Errorf("PreviousYear(2025) = %s, expected 2024", got)
	}

	if _, err := PreviousYear("20X5"); err == nil {
		t.Error("expected error for malformed year")
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"2025", true},
		{"0999", true},
		{"25", false},
		{"20255", false},
		{"20a5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCanonical(tt.input); got != tt.expected {
			t.Errorf("IsCanonical(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestSortedUnique(t *testing.T) {
	got := SortedUnique([]string{"2026", "2025", "2026", "2030", "2025"})
	expected := []string{"2025", "2026", "2030"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("SortedUnique() = %v, expected %v", got, expected)
	}

	if got := SortedUnique(nil); len(got) != 0 {
		t.Errorf("SortedUnique(nil) = %v, expected empty", got)
	}
}
