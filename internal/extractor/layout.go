package extractor

import (
	"regexp"
	"strings"

	"statement-chat/internal/models"
)

// cellSplitRe splits a layout-preserved line into cells: columns are
// separated by runs of two or more spaces.
var cellSplitRe = regexp.MustCompile(`\s{2,}`)

// parsePageTable parses the layout-preserved text of one page into a raw
// table. The first line that splits into at least two cells becomes the
// header; subsequent non-blank lines are sliced at the header's column
// offsets so that absent cells come out as empty strings. Returns nil when
// the page has no tabular region.
func parsePageTable(page int, text string) *models.RawTable {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	var header []string
	var offsets []int
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		cells := splitCells(trimmed)
		if len(cells) >= 2 {
			headerIdx = i
			header = cells
			offsets = cellOffsets(trimmed, cells)
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var rows [][]string
	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimRight(line, " \r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		row := sliceAtOffsets(trimmed, offsets)
		if !rowEmpty(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	return &models.RawTable{Page: page, Header: header, Rows: rows}
}

func splitCells(line string) []string {
	var cells []string
	for _, cell := range cellSplitRe.Split(strings.TrimSpace(line), -1) {
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// cellOffsets finds the rune offset of each header cell within its line.
func cellOffsets(line string, cells []string) []int {
	offsets := make([]int, 0, len(cells))
	runes := []rune(line)
	pos := 0
	for _, cell := range cells {
		cellRunes := []rune(cell)
		for i := pos; i+len(cellRunes) <= len(runes); i++ {
			if string(runes[i:i+len(cellRunes)]) == cell {
				offsets = append(offsets, i)
				pos = i + len(cellRunes)
				break
			}
		}
	}
	return offsets
}

// sliceAtOffsets cuts a data line at the header's column start offsets.
// A data cell may begin slightly left of its header label; each boundary is
// nudged left to the start of the word overlapping it.
func sliceAtOffsets(line string, offsets []int) []string {
	runes := []rune(line)
	bounds := make([]int, len(offsets))
	copy(bounds, offsets)
	if len(bounds) > 0 {
		bounds[0] = 0
	}
	for i := 1; i < len(bounds); i++ {
		b := bounds[i]
		for b > bounds[i-1]+1 && b-1 < len(runes) && b-1 >= 0 && runes[b-1] != ' ' {
			b--
		}
		bounds[i] = b
	}

	cells := make([]string, len(bounds))
	for i := range bounds {
		start := bounds[i]
		if start > len(runes) {
			start = len(runes)
		}
		end := len(runes)
		if i+1 < len(bounds) && bounds[i+1] < end {
			end = bounds[i+1]
		}
		if start < end {
			cells[i] = strings.TrimSpace(string(runes[start:end]))
		}
	}
	return cells
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
