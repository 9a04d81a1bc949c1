// Package normalizer turns raw per-page tables into the canonical
// transaction statement. Normalization is lossy-tolerant by design: it
// retains partial rows and substitutes zero/absent values instead of
// failing the pipeline on a bad cell. It never returns an error; when no
// usable data exists the result is an empty statement.
package normalizer

import (
	"strconv"
	"strings"

	"statement-chat/internal/currencyutils"
	"statement-chat/internal/dateutils"
	"statement-chat/internal/models"
)

// Role triggers: a raw header maps to a canonical column when it contains
// one of these substrings, case-insensitively. The first matching column in
// table order wins.
var (
	dateTriggers      = []string{"date"}
	debitTriggers     = []string{"debit", "withdraw"}
	creditTriggers    = []string{"credit", "deposit"}
	referenceTriggers = []string{"ref", "particular"}
)

// Normalize concatenates the per-page tables, infers the semantic roles of
// their columns and coerces values into a Statement.
func Normalize(tables []models.RawTable) *models.Statement {
	combined := concatenate(tables)
	if combined == nil {
		return &models.Statement{}
	}

	dateIdx := findRole(combined.columns, dateTriggers)
	debitIdx := findRole(combined.columns, debitTriggers)
	creditIdx := findRole(combined.columns, creditTriggers)
	refIdx := findRole(combined.columns, referenceTriggers)

	if dateIdx < 0 && debitIdx < 0 && creditIdx < 0 && refIdx < 0 {
		return &models.Statement{}
	}

	stmt := &models.Statement{
		HasDate:      dateIdx >= 0,
		HasDebit:     debitIdx >= 0,
		HasCredit:    creditIdx >= 0,
		HasReference: refIdx >= 0,
	}

	for _, row := range combined.rows {
		tx := models.Transaction{}
		if dateIdx >= 0 {
			tx.Date = coerceDate(row[dateIdx])
		}
		if debitIdx >= 0 {
			tx.Debit = currencyutils.CoerceAmount(row[debitIdx])
		}
		if creditIdx >= 0 {
			tx.Credit = currencyutils.CoerceAmount(row[creditIdx])
		}
		if refIdx >= 0 {
			tx.Reference = strings.TrimSpace(row[refIdx])
		}
		stmt.Transactions = append(stmt.Transactions, tx)
	}

	return stmt
}

// combinedTable is the concatenation of all page tables: the union of their
// deduplicated columns in first-seen order, rows stacked in page order.
type combinedTable struct {
	columns []string
	rows    [][]string
}

func concatenate(tables []models.RawTable) *combinedTable {
	var columns []string
	colIndex := map[string]int{}

	type pageMapping struct {
		table   models.RawTable
		mapping []int
	}
	var pages []pageMapping

	for _, table := range tables {
		header := DedupeLabels(table.Header)
		mapping := make([]int, len(header))
		for i, label := range header {
			idx, ok := colIndex[label]
			if !ok {
				idx = len(columns)
				columns = append(columns, label)
				colIndex[label] = idx
			}
			mapping[i] = idx
		}
		pages = append(pages, pageMapping{table: table, mapping: mapping})
	}

	if len(columns) == 0 {
		return nil
	}

	combined := &combinedTable{columns: columns}
	for _, page := range pages {
		for _, raw := range page.table.Rows {
			row := make([]string, len(columns))
			for i, idx := range page.mapping {
				if i < len(raw) {
					row[idx] = raw[i]
				}
			}
			combined.rows = append(combined.rows, row)
		}
	}

	return combined
}

// DedupeLabels makes a header's labels unique by suffixing repeated labels
// with their positional index. The first occurrence keeps its original
// label, so running the function over an already-unique header is a no-op.
func DedupeLabels(header []string) []string {
	seen := map[string]bool{}
	out := make([]string, len(header))
	for i, label := range header {
		if seen[label] {
			label = label + "_" + strconv.Itoa(i)
		}
		seen[label] = true
		out[i] = label
	}
	return out
}

// findRole returns the index of the first column whose label contains any
// of the trigger substrings, or -1 when no column matches.
func findRole(columns []string, triggers []string) int {
	for i, label := range columns {
		lower := strings.ToLower(label)
		for _, trigger := range triggers {
			if strings.Contains(lower, trigger) {
				return i
			}
		}
	}
	return -1
}

// coerceDate parses a date cell permissively; anything unparsable becomes
// an absent date, never an error.
func coerceDate(value string) models.Date {
	t, err := dateutils.ParseDateString(value)
	if err != nil {
		return models.Date{}
	}
	return models.NewDate(t)
}
