package extractor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-chat/internal/logging"
	"statement-chat/internal/models"
	"statement-chat/internal/pipelineerr"
)

func sampleTables() []models.RawTable {
	return []models.RawTable{
		{Page: 1, Header: []string{"Date", "Debit"}, Rows: [][]string{{"2024-01-01", "10"}}},
	}
}

func TestExtractFile(t *testing.T) {
	log := &logging.MockLogger{}
	tables, err := ExtractFile("statement.pdf", "", NewMockExtractor(sampleTables(), nil), log)

	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.True(t, log.HasMessage("Extracted tables"))
}

func TestExtractFileNoTables(t *testing.T) {
	_, err := ExtractFile("statement.pdf", "", NewMockExtractor(nil, nil), &logging.MockLogger{})

	var formatErr *pipelineerr.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "statement.pdf", formatErr.FilePath)
	assert.Contains(t, formatErr.Error(), "no extractable table")
}

func TestExtractFilePropagatesError(t *testing.T) {
	authErr := &pipelineerr.AuthenticationError{FilePath: "statement.pdf"}
	_, err := ExtractFile("statement.pdf", "pw", NewMockExtractor(nil, authErr), &logging.MockLogger{})
	assert.ErrorIs(t, err, authErr)
}

func TestExtractFromReader(t *testing.T) {
	tables, err := Extract(strings.NewReader("%PDF-1.4 fake"), "",
		NewMockExtractor(sampleTables(), nil), &logging.MockLogger{})

	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestExtractFromReaderLayoutText(t *testing.T) {
	mock := &MockExtractor{LayoutText: pageText}
	tables, err := Extract(strings.NewReader("fake"), "", mock, &logging.MockLogger{})

	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Date", "Debit", "Credit", "Reference"}, tables[0].Header)
}

func TestCombinedExtractorPasswordUsesPoppler(t *testing.T) {
	c := &CombinedExtractor{
		Native:  NewMockExtractor(nil, errors.New("native must not be called")),
		Poppler: NewMockExtractor(sampleTables(), nil),
	}

	tables, err := c.ExtractTables("statement.pdf", "secret")
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestCombinedExtractorPrefersNative(t *testing.T) {
	c := &CombinedExtractor{
		Native:  NewMockExtractor(sampleTables(), nil),
		Poppler: NewMockExtractor(nil, errors.New("poppler must not be called")),
	}

	tables, err := c.ExtractTables("statement.pdf", "")
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestCombinedExtractorFallsBackToPoppler(t *testing.T) {
	c := &CombinedExtractor{
		Native:  NewMockExtractor(nil, errors.New("parse failure")),
		Poppler: NewMockExtractor(sampleTables(), nil),
	}

	tables, err := c.ExtractTables("statement.pdf", "")
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestCombinedExtractorAuthErrorStops(t *testing.T) {
	authErr := &pipelineerr.AuthenticationError{FilePath: "statement.pdf"}
	c := &CombinedExtractor{
		Native:  NewMockExtractor(nil, authErr),
		Poppler: NewMockExtractor(sampleTables(), nil),
	}

	_, err := c.ExtractTables("statement.pdf", "")
	assert.ErrorIs(t, err, authErr)
}
