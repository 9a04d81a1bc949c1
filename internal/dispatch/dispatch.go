// Package dispatch maps query keys and free-text questions to aggregation
// calls. Matching is keyword/substring based and the outcome is always a
// displayable QueryResult; unrecognized input produces the "not understood"
// variant, never an error.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"statement-chat/internal/analysis"
	"statement-chat/internal/currencyutils"
	"statement-chat/internal/logging"
	"statement-chat/internal/models"
	"statement-chat/internal/session"
)

// Fixed query keys, matching the menu the UI offers.
const (
	KeyHighestDebit       = "highest_debit"
	KeyHighestCredit      = "highest_credit"
	KeyMostTransactions   = "most_transactions"
	KeyTotalSpent         = "total_spent"
	KeyTotalDeposited     = "total_deposited"
	KeyMonthlySummary     = "monthly_summary"
	KeyWeeklySummary      = "weekly_summary"
	KeyCountByReference   = "transaction_count_by_reference"
	KeyMostFrequentRef    = "most_frequent_reference"
	KeyLargestTransaction = "largest_transaction"
	KeyFilter             = "filter_reference_amount"
)

// fixedKeys is the check order. The free-text triggers are only consulted
// when no fixed key matches.
var fixedKeys = []string{
	KeyHighestDebit,
	KeyHighestCredit,
	KeyMostTransactions,
	KeyTotalSpent,
	KeyTotalDeposited,
	KeyMonthlySummary,
	KeyWeeklySummary,
	KeyCountByReference,
	KeyMostFrequentRef,
	KeyLargestTransaction,
	KeyFilter,
}

const (
	topGroups      = 5
	topCountGroups = 10
)

// Dispatcher resolves queries against a session's statement. It keeps no
// state between calls.
type Dispatcher struct {
	Log     logging.Logger
	Aliases map[string]string
	AI      AIClient
}

// New creates a Dispatcher.
func New(log logging.Logger) *Dispatcher {
	return &Dispatcher{Log: log}
}

// Dispatch resolves one query string (a fixed key or free text) against the
// session's statement.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, query string) models.QueryResult {
	stmt := sess.Statement()
	if stmt.Empty() {
		return models.MessageResult("No statement data loaded. Process a PDF first.")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.MessageResult("Type a question or pick one of the quick analysis options.")
	}

	d.Log.Debug("Dispatching query", logging.Field{Key: logging.FieldQuery, Value: q})

	for _, key := range fixedKeys {
		if strings.Contains(q, key) {
			return d.runFixed(key, sess, stmt)
		}
	}

	if key, ok := d.Aliases[q]; ok {
		return d.runFixed(key, sess, stmt)
	}

	if strings.Contains(q, "how much") || strings.Contains(q, "spent on") || strings.Contains(q, "spend on") {
		return d.spentOn(stmt, q)
	}

	if d.AI != nil {
		if answer, err := d.AI.Answer(ctx, q, stmt); err == nil {
			return models.MessageResult(answer)
		} else {
			d.Log.WithError(err).Warn("AI fallback failed",
				logging.Field{Key: logging.FieldQuery, Value: q})
		}
	}

	return models.MessageResult("Sorry, I didn't understand. Try one of the quick analysis options or keywords.")
}

func (d *Dispatcher) runFixed(key string, sess *session.Session, stmt *models.Statement) models.QueryResult {
	d.Log.Debug("Running fixed query", logging.Field{Key: logging.FieldQueryKey, Value: key})

	switch key {
	case KeyHighestDebit:
		top := analysis.TopDebits(stmt, topGroups)
		if len(top) == 0 {
			return models.MessageResult("No debit data found.")
		}
		return models.QueryResult{
			Kind:   models.ResultRanked,
			Label:  top[0].Label,
			Scalar: top[0].Amount,
			Ranked: top,
			Series: models.RankedSeries(top),
		}

	case KeyHighestCredit:
		top := analysis.TopCredits(stmt, topGroups)
		if len(top) == 0 {
			return models.MessageResult("No credit data found.")
		}
		return models.QueryResult{
			Kind:   models.ResultRanked,
			Label:  top[0].Label,
			Scalar: top[0].Amount,
			Ranked: top,
			Series: models.RankedSeries(top),
		}

	case KeyMostTransactions:
		days := analysis.TransactionsPerDay(stmt)
		if len(days) == 0 {
			return models.MessageResult("No date data found.")
		}
		busiest := days[0]
		for _, day := range days[1:] {
			if day.Count > busiest.Count {
				busiest = day
			}
		}
		return models.QueryResult{
			Kind:   models.ResultCounts,
			Label:  busiest.Label,
			Counts: days,
			Series: models.CountSeries(days),
		}

	case KeyTotalSpent:
		if !stmt.HasDebit {
			return models.MessageResult("Debit data not available.")
		}
		return models.ScalarResult("Total amount spent", analysis.TotalDebit(stmt))

	case KeyTotalDeposited:
		if !stmt.HasCredit {
			return models.MessageResult("Credit data not available.")
		}
		return models.ScalarResult("Total amount deposited", analysis.TotalCredit(stmt))

	case KeyMonthlySummary:
		return bucketResult(analysis.MonthlySummary(stmt))

	case KeyWeeklySummary:
		return bucketResult(analysis.WeeklySummary(stmt))

	case KeyCountByReference:
		counts := analysis.CountByReference(stmt)
		if len(counts) == 0 {
			return models.MessageResult("No reference data available.")
		}
		series := counts
		if len(series) > topCountGroups {
			series = series[:topCountGroups]
		}
		return models.QueryResult{
			Kind:   models.ResultCounts,
			Counts: counts,
			Series: models.CountSeries(series),
		}

	case KeyMostFrequentRef:
		top, ok := analysis.MostFrequentReference(stmt)
		if !ok {
			return models.MessageResult("No reference data available.")
		}
		counts := analysis.CountByReference(stmt)
		if len(counts) > topCountGroups {
			counts = counts[:topCountGroups]
		}
		return models.QueryResult{
			Kind:    models.ResultCounts,
			Label:   top.Label,
			Counts:  []models.LabeledCount{top},
			Series:  models.CountSeries(counts),
			Message: fmt.Sprintf("Most frequent reference: %s (%d times)", top.Label, top.Count),
		}

	case KeyLargestTransaction:
		maxDebit, maxCredit := analysis.LargestTransaction(stmt)
		return models.QueryResult{
			Kind: models.ResultRanked,
			Ranked: []models.LabeledAmount{
				{Label: string(models.ColumnDebit), Amount: maxDebit},
				{Label: string(models.ColumnCredit), Amount: maxCredit},
			},
		}

	case KeyFilter:
		return d.filter(sess, stmt)
	}

	return models.MessageResult("Sorry, I didn't understand. Try one of the quick analysis options or keywords.")
}

func bucketResult(buckets []models.PeriodSummary) models.QueryResult {
	if len(buckets) == 0 {
		return models.MessageResult("No date data available.")
	}
	series := make([]models.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, models.SeriesPoint{Label: b.Period, Value: b.Debit})
	}
	return models.QueryResult{
		Kind:    models.ResultBuckets,
		Buckets: buckets,
		Series:  series,
	}
}

// filter applies the session's filter settings: reference search first,
// then the amount range on the chosen column.
func (d *Dispatcher) filter(sess *session.Session, stmt *models.Statement) models.QueryResult {
	f := sess.Filter

	rows := stmt.Transactions
	filtered := stmt
	if f.SearchTerm != "" {
		rows = analysis.SearchReference(stmt, f.SearchTerm)
		filtered = subset(stmt, rows)
	}
	rows = analysis.FilterByAmount(filtered, f.MinAmount, f.MaxAmount, f.Column)

	if len(rows) == 0 {
		return models.MessageResult("No matching transactions found.")
	}
	return models.QueryResult{
		Kind:    models.ResultRows,
		Rows:    rows,
		Message: fmt.Sprintf("Found %d transactions matching your criteria.", len(rows)),
	}
}

// spentOn answers "how much did I spend on X": the text after the last
// literal "on" token is the search term. Terms containing the word "on"
// earlier keep only the trailing part; that matches the menu behavior users
// already rely on.
func (d *Dispatcher) spentOn(stmt *models.Statement, q string) models.QueryResult {
	parts := strings.Split(q, "on")
	if len(parts) < 2 {
		return models.MessageResult("Specify what to search. Example: 'How much did I spend on food?'")
	}
	term := strings.TrimSpace(parts[len(parts)-1])
	if term == "" {
		return models.MessageResult("Specify what to search. Example: 'How much did I spend on food?'")
	}

	d.Log.Debug("Free-text spend query", logging.Field{Key: logging.FieldTerm, Value: term})

	rows := analysis.SearchReference(stmt, term)
	if len(rows) == 0 {
		return models.MessageResult(fmt.Sprintf("No transactions found containing '%s'.", term))
	}

	total := analysis.TotalDebit(subset(stmt, rows))
	return models.QueryResult{
		Kind:    models.ResultRows,
		Scalar:  total,
		Label:   term,
		Rows:    rows,
		Message: fmt.Sprintf("You spent %s on %s.", currencyutils.FormatAmount(total), term),
	}
}

// subset wraps a derived row sequence in a statement view that keeps the
// parent's column presence flags.
func subset(stmt *models.Statement, rows []models.Transaction) *models.Statement {
	return &models.Statement{
		Transactions: rows,
		HasDate:      stmt.HasDate,
		HasDebit:     stmt.HasDebit,
		HasCredit:    stmt.HasCredit,
		HasReference: stmt.HasReference,
	}
}
