package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmount checks that an amount/price is strictly positive.
// The field name is included so envelope errors stay actionable.
func ValidateAmount(field string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}

// ValidateDate checks for a valid ISO calendar date (YYYY-MM-DD).
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format (YYYY-MM-DD required)")
	}
	return nil
}

// ValidateRequired checks that a text field is non-empty after trimming.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing %s", field)
	}
	return nil
}
