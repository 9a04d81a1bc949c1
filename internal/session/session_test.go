package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-chat/internal/extractor"
	"statement-chat/internal/logging"
	"statement-chat/internal/models"
	"statement-chat/internal/pipelineerr"
)

func sampleTables() []models.RawTable {
	return []models.RawTable{
		{
			Page:   1,
			Header: []string{"Date", "Debit", "Reference"},
			Rows:   [][]string{{"2024-01-01", "50.00", "Coffee Shop"}},
		},
	}
}

func TestProcessFile(t *testing.T) {
	sess := New(extractor.NewMockExtractor(sampleTables(), nil), &logging.MockLogger{})

	require.NoError(t, sess.ProcessFile("statement.pdf", ""))
	stmt := sess.Statement()
	require.NotNil(t, stmt)
	assert.Equal(t, 1, stmt.Len())
	assert.True(t, stmt.HasDebit)
}

func TestProcessReader(t *testing.T) {
	sess := New(extractor.NewMockExtractor(sampleTables(), nil), &logging.MockLogger{})

	require.NoError(t, sess.Process(strings.NewReader("%PDF fake"), ""))
	assert.Equal(t, 1, sess.Statement().Len())
}

func TestProcessEmptyResult(t *testing.T) {
	tables := []models.RawTable{
		{Page: 1, Header: []string{"Foo", "Bar"}, Rows: [][]string{{"a", "b"}}},
	}
	sess := New(extractor.NewMockExtractor(tables, nil), &logging.MockLogger{})

	err := sess.ProcessFile("statement.pdf", "")
	var emptyErr *pipelineerr.EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Nil(t, sess.Statement())
}

func TestFailedReprocessKeepsPreviousStatement(t *testing.T) {
	mock := extractor.NewMockExtractor(sampleTables(), nil)
	sess := New(mock, &logging.MockLogger{})
	require.NoError(t, sess.ProcessFile("first.pdf", ""))

	mock.Err = errors.New("broken document")
	assert.Error(t, sess.ProcessFile("second.pdf", ""))
	require.NotNil(t, sess.Statement())
	assert.Equal(t, 1, sess.Statement().Len())

	// Same guarantee when extraction succeeds but yields nothing usable.
	mock.Err = nil
	mock.Tables = []models.RawTable{
		{Page: 1, Header: []string{"Foo", "Bar"}, Rows: [][]string{{"a", "b"}}},
	}
	assert.Error(t, sess.ProcessFile("third.pdf", ""))
	assert.Equal(t, 1, sess.Statement().Len())
}

func TestReprocessReplacesStatement(t *testing.T) {
	mock := extractor.NewMockExtractor(sampleTables(), nil)
	sess := New(mock, &logging.MockLogger{})
	require.NoError(t, sess.ProcessFile("first.pdf", ""))

	mock.Tables = []models.RawTable{
		{
			Page:   1,
			Header: []string{"Date", "Credit"},
			Rows: [][]string{
				{"2024-02-01", "100"},
				{"2024-02-02", "200"},
			},
		},
	}
	require.NoError(t, sess.ProcessFile("second.pdf", ""))

	stmt := sess.Statement()
	assert.Equal(t, 2, stmt.Len())
	assert.False(t, stmt.HasDebit)
	assert.True(t, stmt.HasCredit)
}

func TestDefaultFilter(t *testing.T) {
	sess := New(extractor.NewMockExtractor(nil, nil), &logging.MockLogger{})
	assert.Equal(t, models.ColumnDebit, sess.Filter.Column)
	assert.Empty(t, sess.Filter.SearchTerm)
}

func TestSetFilter(t *testing.T) {
	sess := New(extractor.NewMockExtractor(nil, nil), &logging.MockLogger{})
	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("100")

	sess.SetFilter("coffee", min, max, models.ColumnCredit)

	assert.Equal(t, "coffee", sess.Filter.SearchTerm)
	assert.True(t, sess.Filter.MinAmount.Equal(min))
	assert.True(t, sess.Filter.MaxAmount.Equal(max))
	assert.Equal(t, models.ColumnCredit, sess.Filter.Column)
}
