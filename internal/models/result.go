package models

import "github.com/shopspring/decimal"

// ResultKind tags the variant carried by a QueryResult.
type ResultKind int

const (
	// ResultMessage is a displayable message: a usage hint, a "no data"
	// notice, or the "not understood" fallback. It is a normal outcome,
	// never an error.
	ResultMessage ResultKind = iota
	// ResultScalar is a single amount, optionally labeled with its subject.
	ResultScalar
	// ResultRanked is an ordered list of (label, amount) pairs.
	ResultRanked
	// ResultCounts is an ordered list of (label, count) pairs.
	ResultCounts
	// ResultBuckets is a time-bucketed debit/credit table.
	ResultBuckets
	// ResultRows is a filtered transaction subset.
	ResultRows
)

// LabeledAmount pairs a group label with a summed amount.
type LabeledAmount struct {
	Label  string
	Amount decimal.Decimal
}

// LabeledCount pairs a group label with a row count.
type LabeledCount struct {
	Label string
	Count int
}

// PeriodSummary sums debits and credits over one calendar bucket.
type PeriodSummary struct {
	Period string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// SeriesPoint is one ordered (label, value) pair of a chart-ready series.
type SeriesPoint struct {
	Label string
	Value decimal.Decimal
}

// QueryResult is the tagged union returned by the query dispatcher. Kind
// selects the populated variant; Series optionally carries chart-ready data
// for whichever variant is set.
type QueryResult struct {
	Kind    ResultKind
	Message string

	// Scalar variant. Label names the subject (e.g. the reference with the
	// highest debit) when there is one.
	Scalar decimal.Decimal
	Label  string

	Ranked  []LabeledAmount
	Counts  []LabeledCount
	Buckets []PeriodSummary
	Rows    []Transaction

	Series []SeriesPoint
}

// MessageResult builds a plain message outcome.
func MessageResult(msg string) QueryResult {
	return QueryResult{Kind: ResultMessage, Message: msg}
}

// ScalarResult builds a scalar outcome.
func ScalarResult(label string, value decimal.Decimal) QueryResult {
	return QueryResult{Kind: ResultScalar, Label: label, Scalar: value}
}

// RankedSeries converts a ranked list to a chart-ready series.
func RankedSeries(ranked []LabeledAmount) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(ranked))
	for _, r := range ranked {
		series = append(series, SeriesPoint{Label: r.Label, Value: r.Amount})
	}
	return series
}

// CountSeries converts a count list to a chart-ready series.
func CountSeries(counts []LabeledCount) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(counts))
	for _, c := range counts {
		series = append(series, SeriesPoint{Label: c.Label, Value: decimal.NewFromInt(int64(c.Count))})
	}
	return series
}
