package money

import (
	"errors"
	"testing"

	"mitei-ledger-go/internal/store"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"500", 50000},
		{"5", 500},
		{"0.01", 1},
		{"12.5", 1250},
		{"12.50", 1250},
		{" 7.25 ", 725},
		{"$1,000.00", 100000},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if err != nil {
			t.Errorf("ParseAmount(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	inputs := []string{"", "0", "0.00", "-5", "abc", "1.001", "0.100001", "99999999999999999999"}
	for _, input := range inputs {
		if _, err := ParseAmount(input); !errors.Is(err, store.ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q) = %v, want ErrInvalidAmount", input, err)
		}
	}
}

func TestParseAmountTooLarge(t *testing.T) {
	_, err := ParseAmount("92233720368547758.08")
	if !errors.Is(err, store.ErrInvalidAmount) || !errors.Is(err, store.ErrAmountTooLarge) {
		t.Errorf("Expected ErrAmountTooLarge, got %v", err)
	}

	if _, err := ParseAmount("-5"); errors.Is(err, store.ErrAmountTooLarge) {
		t.Errorf("Non-positive amount must not be reported as too large: %v", err)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{12345, "123.45"},
		{50000, "500.00"},
	}
	for _, tt := range tests {
		if got := String(tt.minor); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{30000, "$300.00"},
		{123456789, "$1,234,567.89"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := Format(tt.minor); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}
