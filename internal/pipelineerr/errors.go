// Package pipelineerr defines the typed failures surfaced by the statement
// pipeline. Every failure the extractor or fetcher can hit is converted into
// one of these types so the caller can display it; nothing is raised raw.
package pipelineerr

import "fmt"

// FetchError indicates a remote document could not be downloaded.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("could not fetch document from %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("could not fetch document from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthenticationError indicates the document requires a password that was
// missing or wrong.
type AuthenticationError struct {
	FilePath string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("incorrect or missing password for %s", e.FilePath)
}

// FormatError indicates the document is unreadable, corrupt, or contains no
// extractable table on any page.
type FormatError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable document %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable document %s: %s", e.FilePath, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// EmptyResultError indicates extraction and normalization succeeded but
// produced zero usable rows. It is a valid end state, not a fatal failure;
// a previously processed statement must be left intact when it occurs.
type EmptyResultError struct {
	FilePath string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no relevant transaction data found in %s", e.FilePath)
}
