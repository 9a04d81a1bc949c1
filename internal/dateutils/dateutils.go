// Package dateutils provides the permissive date parsing and calendar
// bucketing used by the normalization and aggregation layers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and normalizes whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// statementFormats are tried in order when coercing a date cell. Slash dates
// are ambiguous; the US layout is tried first, matching the original
// pipeline's month-first default.
var statementFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	"02/01/2006",
	DateLayoutEuropean,
	DateLayoutFull,
	DateLayoutWithMonth,
	"01-02-2006",
	"02-01-2006",
	"2006/01/02",
	"2.1.2006",
	"02 Jan 2006",
	"Jan 02, 2006",
	"2 January 2006",
	"January 2, 2006",
}

// ParseDateString attempts to parse a date string using the formats commonly
// found in bank statements. Returns an error when no format matches; callers
// performing coercion substitute an absent date instead of propagating it.
func ParseDateString(dateStr string) (time.Time, error) {
	cleanDate := CleanDateString(dateStr)
	if cleanDate == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range statementFormats {
		if t, err := time.Parse(format, cleanDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthKey returns the calendar-month bucket label for a date (YYYY-MM).
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// WeekKey returns the ISO-week bucket label for a date (YYYY-Www).
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfISOWeek returns the Monday of the ISO week containing the date.
// Used to order week buckets chronologically.
func StartOfISOWeek(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.AddDate(0, 0, 1-weekday)
}
