// Package analysis is the aggregation library over a normalized statement.
// Every function is pure: it never mutates its input and returns derived
// sequences. Missing columns and empty statements yield explicit empty or
// zero results, never errors. Ranking ties resolve by first-encounter order
// over the statement, which makes results reproducible.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"statement-chat/internal/dateutils"
	"statement-chat/internal/models"
)

// TopDebits groups by Reference, sums Debit per group and returns the n
// largest strictly-positive sums in descending order.
func TopDebits(s *models.Statement, n int) []models.LabeledAmount {
	return topAmounts(s, models.ColumnDebit, n)
}

// TopCredits groups by Reference, sums Credit per group and returns the n
// largest strictly-positive sums in descending order.
func TopCredits(s *models.Statement, n int) []models.LabeledAmount {
	return topAmounts(s, models.ColumnCredit, n)
}

func topAmounts(s *models.Statement, col models.Column, n int) []models.LabeledAmount {
	if s == nil || !s.HasColumn(col) || !s.HasReference {
		return nil
	}

	sums := groupSums(s.Transactions, col)

	var positive []models.LabeledAmount
	for _, g := range sums {
		if g.Amount.IsPositive() {
			positive = append(positive, g)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Amount.GreaterThan(positive[j].Amount)
	})
	if len(positive) > n {
		positive = positive[:n]
	}
	return positive
}

// groupSums sums the chosen column per Reference, groups ordered by first
// encounter.
func groupSums(txs []models.Transaction, col models.Column) []models.LabeledAmount {
	index := map[string]int{}
	var groups []models.LabeledAmount
	for _, tx := range txs {
		i, ok := index[tx.Reference]
		if !ok {
			i = len(groups)
			index[tx.Reference] = i
			groups = append(groups, models.LabeledAmount{Label: tx.Reference})
		}
		groups[i].Amount = groups[i].Amount.Add(tx.Amount(col))
	}
	return groups
}

// TransactionsPerDay counts rows per distinct date, ascending by date.
// Rows with an absent date are excluded.
func TransactionsPerDay(s *models.Statement) []models.LabeledCount {
	if s == nil || !s.HasDate {
		return nil
	}

	counts := map[time.Time]int{}
	var days []time.Time
	for _, tx := range s.Transactions {
		if !tx.Date.Valid() {
			continue
		}
		day := tx.Date.Time
		if _, ok := counts[day]; !ok {
			days = append(days, day)
		}
		counts[day]++
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]models.LabeledCount, 0, len(days))
	for _, day := range days {
		out = append(out, models.LabeledCount{Label: dateutils.ToISODate(day), Count: counts[day]})
	}
	return out
}

// TotalDebit sums the Debit column, zero when the column is absent.
func TotalDebit(s *models.Statement) decimal.Decimal {
	return totalAmount(s, models.ColumnDebit)
}

// TotalCredit sums the Credit column, zero when the column is absent.
func TotalCredit(s *models.Statement) decimal.Decimal {
	return totalAmount(s, models.ColumnCredit)
}

func totalAmount(s *models.Statement, col models.Column) decimal.Decimal {
	total := decimal.Zero
	if s == nil || !s.HasColumn(col) {
		return total
	}
	for _, tx := range s.Transactions {
		total = total.Add(tx.Amount(col))
	}
	return total
}

// MonthlySummary buckets rows by calendar month of Date and sums Debit and
// Credit per bucket, in chronological order. Rows with an absent date are
// excluded from the buckets but remain in the statement.
func MonthlySummary(s *models.Statement) []models.PeriodSummary {
	return periodSummary(s, func(t time.Time) (time.Time, string) {
		return dateutils.StartOfMonth(t), dateutils.MonthKey(t)
	})
}

// WeeklySummary buckets rows by ISO week of Date and sums Debit and Credit
// per bucket, in chronological order.
func WeeklySummary(s *models.Statement) []models.PeriodSummary {
	return periodSummary(s, func(t time.Time) (time.Time, string) {
		return dateutils.StartOfISOWeek(t), dateutils.WeekKey(t)
	})
}

func periodSummary(s *models.Statement, bucket func(time.Time) (time.Time, string)) []models.PeriodSummary {
	if s == nil || !s.HasDate {
		return nil
	}

	type entry struct {
		start   time.Time
		summary models.PeriodSummary
	}
	index := map[string]int{}
	var entries []entry

	for _, tx := range s.Transactions {
		if !tx.Date.Valid() {
			continue
		}
		start, key := bucket(tx.Date.Time)
		i, ok := index[key]
		if !ok {
			i = len(entries)
			index[key] = i
			entries = append(entries, entry{start: start, summary: models.PeriodSummary{Period: key}})
		}
		entries[i].summary.Debit = entries[i].summary.Debit.Add(tx.Debit)
		entries[i].summary.Credit = entries[i].summary.Credit.Add(tx.Credit)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start.Before(entries[j].start) })

	out := make([]models.PeriodSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.summary)
	}
	return out
}

// SearchReference returns the rows whose Reference contains the term,
// case-insensitively. Rows with an absent Reference never match; the result
// is empty when the column is absent.
func SearchReference(s *models.Statement, term string) []models.Transaction {
	if s == nil || !s.HasReference {
		return nil
	}
	lowered := strings.ToLower(term)
	var out []models.Transaction
	for _, tx := range s.Transactions {
		if tx.Reference == "" {
			continue
		}
		if strings.Contains(strings.ToLower(tx.Reference), lowered) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByAmount returns the rows whose chosen column lies in the inclusive
// [min, max] range. A max of zero means no upper bound.
func FilterByAmount(s *models.Statement, min, max decimal.Decimal, col models.Column) []models.Transaction {
	if s == nil || !s.HasColumn(col) {
		return nil
	}
	unbounded := max.IsZero()
	var out []models.Transaction
	for _, tx := range s.Transactions {
		amount := tx.Amount(col)
		if amount.LessThan(min) {
			continue
		}
		if !unbounded && amount.GreaterThan(max) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// FilterByDate returns the rows whose Date lies in the inclusive
// [start, end] range. Rows with an absent date never match.
func FilterByDate(s *models.Statement, start, end time.Time) []models.Transaction {
	if s == nil || !s.HasDate {
		return nil
	}
	var out []models.Transaction
	for _, tx := range s.Transactions {
		if !tx.Date.Valid() {
			continue
		}
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// CountByReference counts rows per distinct Reference, descending by count,
// ties in first-encounter order.
func CountByReference(s *models.Statement) []models.LabeledCount {
	if s == nil || !s.HasReference {
		return nil
	}

	index := map[string]int{}
	var counts []models.LabeledCount
	for _, tx := range s.Transactions {
		i, ok := index[tx.Reference]
		if !ok {
			i = len(counts)
			index[tx.Reference] = i
			counts = append(counts, models.LabeledCount{Label: tx.Reference})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

// MostFrequentReference returns the single Reference with the highest count.
// The second return value is false when the statement has no references.
func MostFrequentReference(s *models.Statement) (models.LabeledCount, bool) {
	counts := CountByReference(s)
	if len(counts) == 0 {
		return models.LabeledCount{}, false
	}
	return counts[0], true
}

// LargestTransaction returns the maximum Debit and maximum Credit values,
// computed independently; they may belong to different rows.
func LargestTransaction(s *models.Statement) (maxDebit, maxCredit decimal.Decimal) {
	if s == nil {
		return decimal.Zero, decimal.Zero
	}
	for _, tx := range s.Transactions {
		if s.HasDebit && tx.Debit.GreaterThan(maxDebit) {
			maxDebit = tx.Debit
		}
		if s.HasCredit && tx.Credit.GreaterThan(maxCredit) {
			maxCredit = tx.Credit
		}
	}
	return maxDebit, maxCredit
}
