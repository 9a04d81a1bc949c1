package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dslipak/pdf"

	"statement-chat/internal/models"
	"statement-chat/internal/pipelineerr"
)

// wordGap is the horizontal distance (in points) between two text fragments
// beyond which they belong to different cells.
const wordGap = 6.0

// NativeExtractor extracts tables in-process. It cannot decrypt
// password-protected documents; those go through the poppler backend.
type NativeExtractor struct{}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractTables implements TableExtractor.
func (e *NativeExtractor) ExtractTables(path, password string) (tables []models.RawTable, err error) {
	// The underlying reader panics on malformed content; surface that as a
	// typed failure instead.
	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = &pipelineerr.FormatError{
				FilePath: path,
				Reason:   "malformed document",
				Err:      fmt.Errorf("%v", r),
			}
		}
	}()

	if password != "" {
		return nil, &pipelineerr.AuthenticationError{FilePath: path}
	}

	reader, err := pdf.Open(path)
	if err != nil {
		if strings.Contains(err.Error(), "encrypt") || strings.Contains(err.Error(), "password") {
			return nil, &pipelineerr.AuthenticationError{FilePath: path}
		}
		return nil, &pipelineerr.FormatError{FilePath: path, Reason: "cannot open document", Err: err}
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		if table := tableFromRows(pageNum, rows); table != nil {
			tables = append(tables, *table)
		}
	}

	return tables, nil
}

// positionedCell is a cell with the x coordinate where it starts.
type positionedCell struct {
	x    float64
	text string
}

// tableFromRows builds a raw table from positioned text rows: the first row
// with at least two cells is the header, and later cells are assigned to
// the header column whose x position is nearest.
func tableFromRows(page int, rows pdf.Rows) *models.RawTable {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	var header []positionedCell
	var dataRows [][]string
	for _, row := range rows {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}
		if header == nil {
			if len(cells) >= 2 {
				header = cells
			}
			continue
		}
		dataRows = append(dataRows, alignCells(cells, header))
	}

	if header == nil || len(dataRows) == 0 {
		return nil
	}

	labels := make([]string, len(header))
	for i, cell := range header {
		labels[i] = cell.text
	}
	return &models.RawTable{Page: page, Header: labels, Rows: dataRows}
}

// rowCells merges a row's text fragments into cells, splitting where the
// horizontal gap between fragments exceeds wordGap.
func rowCells(row *pdf.Row) []positionedCell {
	words := make([]pdf.Text, len(row.Content))
	copy(words, row.Content)
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].X < words[j].X
	})

	var cells []positionedCell
	var current strings.Builder
	var currentX, lastEnd float64
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			cells = append(cells, positionedCell{x: currentX, text: text})
		}
		current.Reset()
	}

	for _, word := range words {
		if strings.TrimSpace(word.S) == "" {
			continue
		}
		if current.Len() == 0 {
			currentX = word.X
		} else if word.X-lastEnd > wordGap {
			flush()
			currentX = word.X
		} else {
			current.WriteString(" ")
		}
		current.WriteString(strings.TrimSpace(word.S))
		lastEnd = word.X + word.W
	}
	flush()

	return cells
}

// alignCells places a data row's cells into the header's columns by nearest
// x position. Columns with no cell stay empty.
func alignCells(cells []positionedCell, header []positionedCell) []string {
	row := make([]string, len(header))
	for _, cell := range cells {
		best := 0
		bestDist := distance(cell.x, header[0].x)
		for i := 1; i < len(header); i++ {
			if d := distance(cell.x, header[i].x); d < bestDist {
				best = i
				bestDist = d
			}
		}
		if row[best] == "" {
			row[best] = cell.text
		} else {
			row[best] += " " + cell.text
		}
	}
	return row
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
