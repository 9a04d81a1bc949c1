// Package fetch downloads a remote statement document. Failures surface as
// typed FetchError values, never as a crash of the pipeline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"statement-chat/internal/logging"
	"statement-chat/internal/pipelineerr"
)

// Fetcher downloads documents over HTTP.
type Fetcher struct {
	Client *http.Client
	Log    logging.Logger
}

// New creates a Fetcher with the given timeout.
func New(timeout time.Duration, log logging.Logger) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: timeout},
		Log:    log,
	}
}

// Fetch downloads the document at url and returns its bytes. Network
// errors and non-2xx statuses become FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.Log.Info("Fetching document", logging.Field{Key: logging.FieldURL, Value: url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &pipelineerr.FetchError{URL: url, Err: err}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &pipelineerr.FetchError{URL: url, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.Log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &pipelineerr.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pipelineerr.FetchError{URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}

	f.Log.Info("Fetched document",
		logging.Field{Key: logging.FieldURL, Value: url},
		logging.Field{Key: logging.FieldCount, Value: len(body)})
	return body, nil
}
