// Package session holds the per-session state of the pipeline: the current
// normalized statement and the active filter settings. One session owns one
// statement; reprocessing replaces it wholesale and a failed attempt leaves
// the previous statement intact. Sessions are not shared across users, so
// no locking is involved.
package session

import (
	"io"

	"github.com/shopspring/decimal"

	"statement-chat/internal/extractor"
	"statement-chat/internal/logging"
	"statement-chat/internal/models"
	"statement-chat/internal/normalizer"
	"statement-chat/internal/pipelineerr"
)

// Filter bundles the filter-request settings supplied by the caller.
type Filter struct {
	SearchTerm string
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
	Column     models.Column
}

// Session is the explicit context passed into the dispatcher and the
// aggregation calls.
type Session struct {
	Extractor extractor.TableExtractor
	Log       logging.Logger

	statement *models.Statement
	Filter    Filter
}

// New creates a session with no statement loaded.
func New(e extractor.TableExtractor, log logging.Logger) *Session {
	return &Session{
		Extractor: e,
		Log:       log,
		Filter:    Filter{Column: models.ColumnDebit},
	}
}

// SetFilter replaces the session's filter settings.
func (s *Session) SetFilter(term string, min, max decimal.Decimal, col models.Column) {
	s.Filter = Filter{
		SearchTerm: term,
		MinAmount:  min,
		MaxAmount:  max,
		Column:     col,
	}
}

// Statement returns the current statement, or nil when none is loaded.
func (s *Session) Statement() *models.Statement {
	return s.statement
}

// Process extracts and normalizes a document and replaces the session's
// statement. On failure the previous statement is left untouched; a
// normalization that yields zero rows is reported as EmptyResultError and
// also preserves the previous statement.
func (s *Session) Process(r io.Reader, password string) error {
	tables, err := extractor.Extract(r, password, s.Extractor, s.Log)
	if err != nil {
		return err
	}
	return s.replace(tables, "")
}

// ProcessFile is Process for a document already on disk.
func (s *Session) ProcessFile(path, password string) error {
	tables, err := extractor.ExtractFile(path, password, s.Extractor, s.Log)
	if err != nil {
		return err
	}
	return s.replace(tables, path)
}

func (s *Session) replace(tables []models.RawTable, path string) error {
	stmt := normalizer.Normalize(tables)
	if stmt.Empty() {
		return &pipelineerr.EmptyResultError{FilePath: path}
	}

	s.statement = stmt
	s.Log.Info("Statement processed",
		logging.Field{Key: logging.FieldCount, Value: stmt.Len()})
	return nil
}
