package extractor

import "statement-chat/internal/models"

// MockExtractor implements TableExtractor for tests, returning predefined
// tables or an error instead of reading a document.
type MockExtractor struct {
	Tables []models.RawTable
	Err    error

	// LayoutText, when set, is parsed through the same page splitter the
	// poppler backend uses, so tests can exercise the layout parsing.
	LayoutText string
}

// NewMockExtractor creates a MockExtractor with fixed tables.
func NewMockExtractor(tables []models.RawTable, err error) *MockExtractor {
	return &MockExtractor{Tables: tables, Err: err}
}

// ExtractTables implements TableExtractor.
func (e *MockExtractor) ExtractTables(path, password string) ([]models.RawTable, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	if e.LayoutText != "" {
		return parsePages(e.LayoutText), nil
	}
	return e.Tables, nil
}
