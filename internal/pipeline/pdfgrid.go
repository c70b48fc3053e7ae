package pipeline

import (
	"math"
	"sort"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/config"
)

// GridOptions tune how positioned glyphs are folded back into a cell grid.
type GridOptions struct {
	// RowTolerance is the Y distance in points within which glyphs share a row.
	RowTolerance float64
	// ColumnSnap is the X distance in points within which column starts align.
	ColumnSnap float64
	// WordGap, times the font size, is the largest gap inside one cell.
	WordGap float64
	// MinColumnShare is the fraction of rows a column start must appear in.
	MinColumnShare float64
}

func DefaultGridOptions() GridOptions {
	return GridOptions{RowTolerance: 2.5, ColumnSnap: 4, WordGap: 0.3, MinColumnShare: 0.3}
}

func GridOptionsFromConfig(cfg config.Config) GridOptions {
	opt := DefaultGridOptions()
	if cfg.PDFRowTolerance > 0 {
		opt.RowTolerance = cfg.PDFRowTolerance
	}
	if cfg.PDFColumnSnap > 0 {
		opt.ColumnSnap = cfg.PDFColumnSnap
	}
	if cfg.PDFWordGap > 0 {
		opt.WordGap = cfg.PDFWordGap
	}
	if cfg.PDFMinColumnShare > 0 {
		opt.MinColumnShare = cfg.PDFMinColumnShare
	}
	return opt
}

// columnSlack absorbs rounding in glyph positions when matching a segment to
// its column start.
const columnSlack = 0.5

// segment is a run of glyphs on one line with no column-sized gap inside.
type segment struct {
	x, right float64
	size     float64
	text     strings.Builder
}

type line struct {
	y        float64
	glyphs   []pdf.Text
	segments []*segment
}

// buildGrid rebuilds one page's table from its text and ruling rectangles.
func buildGrid(content pdf.Content, opt GridOptions) internal.Table {
	lines := groupLines(content.Text, opt.RowTolerance)
	if len(lines) == 0 {
		return internal.Table{}
	}
	for _, ln := range lines {
		ln.segments = splitSegments(ln.glyphs, opt.WordGap)
	}

	columns := rulingColumns(content.Rect, opt.ColumnSnap)
	if len(columns) < 2 {
		columns = alignedColumns(lines, opt)
	}

	rows := make([][]string, 0, len(lines))
	for _, ln := range lines {
		if len(ln.segments) == 0 {
			continue
		}
		rows = append(rows, placeSegments(ln.segments, columns))
	}
	return internal.Table{Rows: NormalizeRows(rows)}
}

// groupLines buckets glyphs by baseline, top of page first.
func groupLines(texts []pdf.Text, tolerance float64) []*line {
	var lines []*line
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		var target *line
		for _, ln := range lines {
			if math.Abs(ln.y-t.Y) <= tolerance {
				target = ln
				break
			}
		}
		if target == nil {
			target = &line{y: t.Y}
			lines = append(lines, target)
		}
		target.glyphs = append(target.glyphs, t)
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })
	for _, ln := range lines {
		sort.SliceStable(ln.glyphs, func(i, j int) bool { return ln.glyphs[i].X < ln.glyphs[j].X })
	}
	return lines
}

func splitSegments(glyphs []pdf.Text, wordGap float64) []*segment {
	var out []*segment
	var cur *segment
	for _, g := range glyphs {
		blank := strings.TrimSpace(g.S) == ""
		if cur != nil {
			threshold := wordGap * cur.size
			if cur.size == 0 {
				threshold = 3
			}
			if g.X-cur.right > threshold {
				cur = nil
			}
		}
		if cur == nil {
			if blank {
				continue
			}
			cur = &segment{x: g.X, right: g.X, size: g.FontSize}
			out = append(out, cur)
		}
		cur.text.WriteString(g.S)
		cur.right = math.Max(cur.right, g.X+g.W)
	}
	return out
}

// rulingColumns reads column edges off thin vertical rectangles, which is how
// most exporters draw table borders.
func rulingColumns(rects []pdf.Rect, snap float64) []float64 {
	var xs []float64
	for _, r := range rects {
		w := math.Abs(r.Max.X - r.Min.X)
		h := math.Abs(r.Max.Y - r.Min.Y)
		if w > 2 || h < 10 {
			continue
		}
		xs = append(xs, math.Min(r.Min.X, r.Max.X))
	}
	sort.Float64s(xs)

	var edges []float64
	for _, x := range xs {
		if len(edges) > 0 && x-edges[len(edges)-1] <= snap {
			continue
		}
		edges = append(edges, x)
	}
	return edges
}

// alignedColumns clusters segment starts lying within ColumnSnap of each
// other and keeps the clusters that recur on enough lines. A column starts
// at the leftmost member of its cluster.
func alignedColumns(lines []*line, opt GridOptions) []float64 {
	type start struct {
		x    float64
		line int
	}
	var starts []start
	for i, ln := range lines {
		for _, s := range ln.segments {
			starts = append(starts, start{x: s.x, line: i})
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].x < starts[j].x })

	minCount := max(int(math.Ceil(opt.MinColumnShare*float64(len(lines)))), 2)
	var columns []float64
	for i := 0; i < len(starts); {
		lo := starts[i].x
		seen := map[int]bool{}
		j := i
		for j < len(starts) && starts[j].x-lo <= opt.ColumnSnap {
			seen[starts[j].line] = true
			j++
		}
		if len(seen) >= minCount {
			columns = append(columns, lo)
		}
		i = j
	}
	return columns
}

func placeSegments(segs []*segment, columns []float64) []string {
	if len(columns) == 0 {
		out := make([]string, len(segs))
		for i, s := range segs {
			out[i] = s.text.String()
		}
		return out
	}

	cells := make([]string, len(columns)+1)
	for _, s := range segs {
		idx := columnIndex(s.x+columnSlack, columns) + 1
		if cells[idx] != "" {
			cells[idx] += " "
		}
		cells[idx] += s.text.String()
	}
	if cells[0] == "" {
		cells = cells[1:]
	}
	return cells
}

// columnIndex is the last column starting at or before x, or -1 when x lies
// left of every column.
func columnIndex(x float64, columns []float64) int {
	return sort.Search(len(columns), func(i int) bool { return columns[i] > x }) - 1
}
