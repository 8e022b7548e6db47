package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10000000) // 10 million upper bound

// ValidateAmount checks that a transaction amount is a positive magnitude
// below the upper bound. Sign is carried by the transaction type, never by
// the number.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD calendar date format.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateCategory checks the free-text category label.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}

// ValidateDescription checks the transaction description.
func ValidateDescription(description string) error {
	if description == "" {
		return fmt.Errorf("description is empty")
	}
	if len(description) > 255 {
		return fmt.Errorf("description too long, max 255 characters")
	}
	return nil
}
