package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "1234.56", "1234.56"},
		{"comma thousands", "1,234.56", "1234.56"},
		{"european", "1.234,56", "1234.56"},
		{"comma decimal", "1234,56", "1234.56"},
		{"comma thousands no decimals", "1,234", "1234"},
		{"apostrophe thousands", "1'234.56", "1234.56"},
		{"euro symbol", "€ 1234.56", "1234.56"},
		{"dollar symbol", "$99.95", "99.95"},
		{"negative", "-42.10", "-42.10"},
		{"zero", "0", "0"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.expected)),
				"got %s, want %s", amount, tc.expected)
		})
	}
}

func TestParseAmountInvalid(t *testing.T) {
	_, err := ParseAmount("not a number")
	assert.Error(t, err)
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "1234.56", StandardizeAmount("1,234.56"))
	assert.Equal(t, "1234.56", StandardizeAmount("1.234,56"))
	assert.Equal(t, "1234567", StandardizeAmount("1,234,567"))
	assert.Equal(t, "1234.56", StandardizeAmount("1'234.56"))
}

func TestCoerceAmount(t *testing.T) {
	assert.True(t, CoerceAmount("12.50").Equal(decimal.RequireFromString("12.50")))
	assert.True(t, CoerceAmount("garbage").IsZero())
	assert.True(t, CoerceAmount("").IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234.50", FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
