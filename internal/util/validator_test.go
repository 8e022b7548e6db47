package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []string{"0.01", "1.0", "100.5", "9999999.99"}

	for _, amount := range testCases {
		err := ValidateAmount(decimal.RequireFromString(amount))
		if err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_ZeroAndNegative(t *testing.T) {
	testCases := []string{"0", "-0.01", "-100", "-9999.99"}

	for _, amount := range testCases {
		err := ValidateAmount(decimal.RequireFromString(amount))
		if err == nil {
			t.Errorf("ValidateAmount(%s) error = nil, want error", amount)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(decimal.NewFromInt(100000000))

	if err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	for _, category := range []string{"Food", "Housing", "Entertainment"} {
		if err := ValidateCategory(category); err != nil {
			t.Errorf("ValidateCategory(%q) error = %v, want nil", category, err)
		}
	}

	if err := ValidateCategory(""); err == nil {
		t.Error("ValidateCategory(\"\") error = nil, want error")
	}

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'x'
	}
	if err := ValidateCategory(string(long)); err == nil {
		t.Error("ValidateCategory() with long string error = nil, want error")
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription("Groceries at the market"); err != nil {
		t.Errorf("error = %v, want nil", err)
	}

	if err := ValidateDescription(""); err == nil {
		t.Error("empty description accepted")
	}

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	if err := ValidateDescription(string(long)); err == nil {
		t.Error("overlong description accepted")
	}
}
