package pipeline

import (
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
)

// NormalizeRow turns extracted strings into a table row. Blank cells become
// absent cells; text is left as extracted.
func NormalizeRow(cells []string) internal.Row {
	row := make(internal.Row, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		v := c
		row[i] = &v
	}
	return row
}

// NormalizeRows keeps every row, blank ones included, so the header window
// and the minimum row count see the table as laid out. Row width is kept so
// column positions survive.
func NormalizeRows(rows [][]string) []internal.Row {
	out := make([]internal.Row, 0, len(rows))
	for _, cells := range rows {
		out = append(out, NormalizeRow(cells))
	}
	return out
}

// hasText reports whether any cell of the table carries text.
func hasText(rows []internal.Row) bool {
	for _, row := range rows {
		for _, c := range row {
			if c != nil {
				return true
			}
		}
	}
	return false
}
