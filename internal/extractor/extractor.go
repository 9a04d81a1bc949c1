// Package extractor turns statement documents into raw per-page tables.
// Table detection itself is delegated to the backing PDF tooling; this
// package's contract is: first row = header, remaining rows = data, missing
// cells = empty string, pages without a table contribute nothing.
package extractor

import (
	"fmt"
	"io"
	"os"

	"statement-chat/internal/logging"
	"statement-chat/internal/models"
	"statement-chat/internal/pipelineerr"
)

// TableExtractor extracts one raw table per page from a document on disk.
// An empty password means the document is expected to be unencrypted.
type TableExtractor interface {
	ExtractTables(path string, password string) ([]models.RawTable, error)
}

// Extract reads a document from r into a temporary file and extracts its
// tables. Failures are always typed: AuthenticationError for password
// problems, FormatError for unreadable input or when no page yields a table.
func Extract(r io.Reader, password string, e TableExtractor, log logging.Logger) ([]models.RawTable, error) {
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	return ExtractFile(tempFile.Name(), password, e, log)
}

// ExtractFile extracts tables from a document already on disk.
func ExtractFile(path, password string, e TableExtractor, log logging.Logger) ([]models.RawTable, error) {
	log.Info("Extracting tables from document",
		logging.Field{Key: logging.FieldFile, Value: path})

	tables, err := e.ExtractTables(path, password)
	if err != nil {
		return nil, err
	}

	if len(tables) == 0 {
		return nil, &pipelineerr.FormatError{
			FilePath: path,
			Reason:   "no extractable table on any page",
		}
	}

	log.Info("Extracted tables",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(tables)})

	return tables, nil
}

// CombinedExtractor prefers the in-process backend for unencrypted
// documents and falls back to the poppler backend, which is also the only
// backend that can decrypt password-protected documents.
type CombinedExtractor struct {
	Native  TableExtractor
	Poppler TableExtractor
}

// NewCombinedExtractor builds the default production extractor.
func NewCombinedExtractor(pdftotextPath string) *CombinedExtractor {
	return &CombinedExtractor{
		Native:  NewNativeExtractor(),
		Poppler: NewPopplerExtractor(pdftotextPath),
	}
}

// ExtractTables implements TableExtractor.
func (c *CombinedExtractor) ExtractTables(path, password string) ([]models.RawTable, error) {
	if password != "" {
		return c.Poppler.ExtractTables(path, password)
	}
	tables, err := c.Native.ExtractTables(path, "")
	if err == nil {
		return tables, nil
	}
	if _, ok := err.(*pipelineerr.AuthenticationError); ok {
		return nil, err
	}
	return c.Poppler.ExtractTables(path, "")
}
