package pipelineerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &FetchError{URL: "https://example.com/a.pdf", Err: underlying}

	assert.Contains(t, err.Error(), "https://example.com/a.pdf")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, underlying)

	withStatus := &FetchError{URL: "https://example.com/a.pdf", Status: 403}
	assert.Contains(t, withStatus.Error(), "status 403")
}

func TestAuthenticationError(t *testing.T) {
	err := &AuthenticationError{FilePath: "statement.pdf"}
	assert.Contains(t, err.Error(), "statement.pdf")
	assert.Contains(t, err.Error(), "password")
}

func TestFormatError(t *testing.T) {
	underlying := errors.New("bad xref")
	err := &FormatError{FilePath: "statement.pdf", Reason: "malformed document", Err: underlying}

	assert.Contains(t, err.Error(), "malformed document")
	assert.ErrorIs(t, err, underlying)

	bare := &FormatError{FilePath: "statement.pdf", Reason: "no extractable table on any page"}
	assert.Contains(t, bare.Error(), "no extractable table")
	assert.NoError(t, bare.Unwrap())
}

func TestEmptyResultError(t *testing.T) {
	err := &EmptyResultError{FilePath: "statement.pdf"}
	assert.Contains(t, err.Error(), "no relevant transaction data")
}
