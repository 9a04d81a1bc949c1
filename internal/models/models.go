// Package models defines the data types shared by the extraction,
// normalization and analysis layers.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is one table extracted from one page of a statement document.
// The first row of the source table is the header, the remaining rows are
// data. Missing cells are empty strings.
type RawTable struct {
	Page   int
	Header []string
	Rows   [][]string
}

// Date is a calendar date that may be absent. The zero value means absent;
// coercion failures during normalization produce the zero value rather than
// an error.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to its calendar day in UTC.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Valid reports whether the date is present.
func (d Date) Valid() bool {
	return !d.IsZero()
}

// String formats the date as ISO (YYYY-MM-DD), or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalCSV implements gocsv marshalling. Absent dates serialize as "".
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// UnmarshalCSV implements gocsv unmarshalling of the ISO export format.
func (d *Date) UnmarshalCSV(value string) error {
	if value == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Re-imported data is as lossy-tolerant as the original pipeline:
		// an unparsable cell becomes an absent date, not an error.
		*d = Date{}
		return nil
	}
	*d = NewDate(t)
	return nil
}

// Transaction is the canonical unit after normalization: one row of the
// statement projected onto the {Date, Debit, Credit, Reference} columns.
type Transaction struct {
	Date      Date            `csv:"Date"`
	Debit     decimal.Decimal `csv:"Debit"`
	Credit    decimal.Decimal `csv:"Credit"`
	Reference string          `csv:"Reference"`
}

// Column identifies one of the two amount columns of a Transaction.
type Column string

const (
	ColumnDebit  Column = "Debit"
	ColumnCredit Column = "Credit"
)

// Amount returns the value of the chosen amount column.
func (t Transaction) Amount(col Column) decimal.Decimal {
	if col == ColumnCredit {
		return t.Credit
	}
	return t.Debit
}

// Statement is the normalized transaction store: an ordered sequence of
// transactions in original page/row order, plus flags recording which
// semantic columns were actually present in the source document. It is
// owned by one session and replaced wholesale on reprocessing.
type Statement struct {
	Transactions []Transaction

	HasDate      bool
	HasDebit     bool
	HasCredit    bool
	HasReference bool
}

// Len returns the number of transactions.
func (s *Statement) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Transactions)
}

// Empty reports whether the statement holds no usable rows.
func (s *Statement) Empty() bool {
	return s.Len() == 0
}

// HasColumn reports whether the given amount column was present in the
// source document.
func (s *Statement) HasColumn(col Column) bool {
	if s == nil {
		return false
	}
	if col == ColumnCredit {
		return s.HasCredit
	}
	return s.HasDebit
}
