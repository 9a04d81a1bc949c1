package extractor

import (
	"bytes"
	"os/exec"
	"strings"

	"statement-chat/internal/models"
	"statement-chat/internal/pipelineerr"
)

// PopplerExtractor extracts tables by shelling out to pdftotext with layout
// preservation. It is the only backend that can decrypt password-protected
// documents (-upw).
type PopplerExtractor struct {
	// Pdftotext is the command to run, "pdftotext" by default.
	Pdftotext string
}

// NewPopplerExtractor creates a PopplerExtractor. An empty path selects the
// pdftotext found on PATH.
func NewPopplerExtractor(pdftotextPath string) *PopplerExtractor {
	if pdftotextPath == "" {
		pdftotextPath = "pdftotext"
	}
	return &PopplerExtractor{Pdftotext: pdftotextPath}
}

// ExtractTables implements TableExtractor. Pages are separated by form
// feeds in pdftotext output; each page contributes at most one table.
func (e *PopplerExtractor) ExtractTables(path, password string) ([]models.RawTable, error) {
	args := []string{"-layout"}
	if password != "" {
		args = append(args, "-upw", password)
	}
	args = append(args, path, "-")

	cmd := exec.Command(e.Pdftotext, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "Incorrect password") {
			return nil, &pipelineerr.AuthenticationError{FilePath: path}
		}
		return nil, &pipelineerr.FormatError{
			FilePath: path,
			Reason:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return parsePages(stdout.String()), nil
}

// parsePages splits pdftotext output into pages and extracts one table per
// page. Pages without a tabular region are skipped.
func parsePages(text string) []models.RawTable {
	var tables []models.RawTable
	for i, pageText := range strings.Split(text, "\f") {
		if table := parsePageTable(i+1, pageText); table != nil {
			tables = append(tables, *table)
		}
	}
	return tables
}
