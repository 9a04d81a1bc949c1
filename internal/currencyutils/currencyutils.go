// Package currencyutils provides the amount parsing used when coercing
// statement cells to decimal values.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolRe = regexp.MustCompile(`[€$£¥₣₹₽₩฿₫₪CHF\s]`)

// ParseAmount parses a string representation of an amount into a decimal
// value. It handles formats like "1,234.56", "1.234,56", "1'234.56" and
// embedded currency symbols. Empty strings parse as zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts the various separator conventions to a plain
// decimal string that decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = symbolRe.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma as thousands separator (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Comma as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma as thousands separator (1,234 or 1,234,567)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Apostrophes as thousands separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// CoerceAmount parses an amount cell, substituting zero for anything
// unparsable. Never fails.
func CoerceAmount(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// FormatAmount formats a decimal with two decimal places for display.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
