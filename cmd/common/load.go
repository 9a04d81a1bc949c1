// Package common provides the processing helper shared by the subcommands.
package common

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"statement-chat/cmd/root"
	"statement-chat/internal/extractor"
	"statement-chat/internal/fetch"
	"statement-chat/internal/logging"
	"statement-chat/internal/session"
)

// LoadSession builds a session and processes the document selected by the
// persistent flags (local file or direct link). The returned session owns
// the normalized statement.
func LoadSession(ctx context.Context) (*session.Session, error) {
	log := root.GetLogger()
	cfg := root.Cfg
	flags := root.SharedFlags

	ext := extractor.NewCombinedExtractor(cfg.PDF.PdftotextPath)
	sess := session.New(ext, log)

	switch {
	case flags.URL != "":
		timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
		fetcher := fetch.New(timeout, log)
		body, err := fetcher.Fetch(ctx, flags.URL)
		if err != nil {
			return nil, err
		}
		if err := sess.Process(bytes.NewReader(body), flags.Password); err != nil {
			return nil, err
		}

	case flags.Input != "":
		if err := sess.ProcessFile(flags.Input, flags.Password); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("no input: provide --input or --url")
	}

	log.Info("Statement ready",
		logging.Field{Key: logging.FieldCount, Value: sess.Statement().Len()})
	return sess, nil
}
