package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso", "2024-01-15", "2024-01-15"},
		{"us slash month first", "01/02/2024", "2024-01-02"},
		{"european dots", "15.01.2024", "2024-01-15"},
		{"full timestamp", "2024-01-15 10:30:00", "2024-01-15"},
		{"named month", "2-Jan-2024", "2024-01-02"},
		{"day month year words", "02 Jan 2024", "2024-01-02"},
		{"slash ymd", "2024/01/15", "2024-01-15"},
		{"extra whitespace", "  2024-01-15  ", "2024-01-15"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseDateString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ToISODate(parsed))
		})
	}
}

func TestParseDateStringAmbiguousSlash(t *testing.T) {
	// Day values above 12 only fit the day-first layout.
	parsed, err := ParseDateString("15/01/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", ToISODate(parsed))
}

func TestParseDateStringInvalid(t *testing.T) {
	_, err := ParseDateString("not a date")
	assert.Error(t, err)

	_, err = ParseDateString("")
	assert.Error(t, err)
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2024-01-15", CleanDateString("  2024-01-15 "))
	assert.Equal(t, "02 Jan 2024", CleanDateString("02   Jan\t2024"))
}

func TestStartOfMonth(t *testing.T) {
	d := time.Date(2024, 2, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02", MonthKey(d))
}

func TestWeekKey(t *testing.T) {
	// 2024-01-01 is a Monday, ISO week 1.
	assert.Equal(t, "2024-W01", WeekKey(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	// 2023-01-01 is a Sunday and belongs to 2022's last ISO week.
	assert.Equal(t, "2022-W52", WeekKey(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfISOWeek(t *testing.T) {
	// Wednesday 2024-01-17 belongs to the week starting Monday 2024-01-15.
	d := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StartOfISOWeek(d))

	// Sunday maps back to the preceding Monday.
	sunday := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StartOfISOWeek(sunday))
}
