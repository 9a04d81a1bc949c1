// Package export writes transaction subsets as delimited text with a
// header row, columns in canonical order {Date, Debit, Credit, Reference},
// and reads them back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"statement-chat/internal/models"
)

// Delimiter is the output delimiter, configurable via SetDelimiter.
var Delimiter rune = ','

// SetDelimiter sets the delimiter used for CSV output and input.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})
}

// WriteCSV writes transactions to w with a header row.
func WriteCSV(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if err := gocsv.Marshal(&transactions, w); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

// WriteFile writes transactions to a CSV file, creating the directory if
// needed.
func WriteFile(path string, transactions []models.Transaction) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, transactions)
}

// ReadCSV reads an exported transaction table back.
func ReadCSV(r io.Reader) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := gocsv.Unmarshal(r, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	return transactions, nil
}
