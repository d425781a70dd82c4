package services

import (
	"strings"
)

// Column describes one table column: header text, width in document units
// and whether cell content wraps or is clipped to a single line.
type Column struct {
	Header string
	Width  float64
	Wrap   bool
}

// TableSpec is the fixed column layout of one document type plus the
// vertical geometry pagination works against.
type TableSpec struct {
	Columns    []Column
	FontSize   float64
	LineHeight float64
	BodyHeight float64 // vertical space available for body rows per page
}

// TotalWidth is the sum of all column widths.
func (s TableSpec) TotalWidth() float64 {
	var w float64
	for _, c := range s.Columns {
		w += c.Width
	}
	return w
}

// cellPad is the horizontal inset applied inside every cell.
const cellPad = 1.0

// Cell is rendered cell content. Lines is filled by the layout engine;
// Links is set when the cell represents a set of clickable photo tokens.
type Cell struct {
	Text  string
	Lines []string
	Links []LinkTarget
}

// Row is one laid-out table row. Height is the wrapped line count of its
// tallest cell times the spec line height.
type Row struct {
	Cells  []Cell
	Height float64
}

// Mode tags which rendering path produced a layout. Degraded output is a
// deliberate recovery, not a failure: every record is still represented.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDegraded
)

func (m Mode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}
	return "normal"
}

// Layout is the paginated table body. No row is ever split across a page
// boundary.
type Layout struct {
	Pages [][]Row
	Mode  Mode
}

// RowCount is the total number of body rows across all pages.
func (l Layout) RowCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p)
	}
	return n
}

// LayoutEngine wraps cell text and packs rows into pages. Page fill is
// greedy with no lookahead, which keeps it O(n) and byte-for-byte
// reproducible for identical input.
type LayoutEngine struct {
	Measure Measurer
}

// LayoutRows builds n rows through build, wraps them against spec and packs
// them into pages. If any row cannot be built, the whole document degrades
// to a flat one-line-per-record listing from flat: the document is still
// produced and no record is dropped.
func (e LayoutEngine) LayoutRows(spec TableSpec, n int, build func(int) (Row, error), flat func(int) string) Layout {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		row, err := build(i)
		if err != nil || len(row.Cells) != len(spec.Columns) {
			return e.layoutFlat(spec, n, flat)
		}
		e.wrapRow(spec, &row)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return Layout{Mode: ModeNormal}
	}
	return Layout{Pages: paginate(rows, spec.BodyHeight), Mode: ModeNormal}
}

// layoutFlat is the degraded path: one clipped line of text per record,
// spanning the full table width.
func (e LayoutEngine) layoutFlat(spec TableSpec, n int, flat func(int) string) Layout {
	width := spec.TotalWidth() - 2*cellPad
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		line := e.clip(flat(i), width, spec.FontSize)
		rows = append(rows, Row{
			Cells:  []Cell{{Text: line, Lines: []string{line}}},
			Height: spec.LineHeight,
		})
	}
	if len(rows) == 0 {
		return Layout{Mode: ModeDegraded}
	}
	return Layout{Pages: paginate(rows, spec.BodyHeight), Mode: ModeDegraded}
}

func (e LayoutEngine) wrapRow(spec TableSpec, row *Row) {
	maxLines := 1
	for i := range row.Cells {
		cell := &row.Cells[i]
		col := spec.Columns[i]
		inner := col.Width - 2*cellPad

		switch {
		case len(cell.Links) > 0:
			cell.Lines = e.wrapLinkTokens(cell.Links, inner, spec.FontSize)
		case col.Wrap:
			cell.Lines = e.wrapWords(cell.Text, inner, spec.FontSize)
		default:
			cell.Lines = []string{e.clip(cell.Text, inner, spec.FontSize)}
		}
		if len(cell.Lines) > maxLines {
			maxLines = len(cell.Lines)
		}
	}
	row.Height = float64(maxLines) * spec.LineHeight
}

// wrapLinkTokens groups link labels using the same tokens-per-line rule the
// annotation placer uses, so link rectangles match the wrapped text.
func (e LayoutEngine) wrapLinkTokens(links []LinkTarget, width, fontSize float64) []string {
	perLine := TokensPerLine(width, links, e.Measure, fontSize)
	lines := []string{}
	for start := 0; start < len(links); start += perLine {
		end := start + perLine
		if end > len(links) {
			end = len(links)
		}
		labels := make([]string, 0, end-start)
		for _, l := range links[start:end] {
			labels = append(labels, l.Label)
		}
		lines = append(lines, strings.Join(labels, " "))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// wrapWords breaks text at word boundaries so every line's estimated width
// fits. A single word wider than the column is hard-split by runes.
func (e LayoutEngine) wrapWords(text string, width, fontSize float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := []string{}
	cur := ""
	for _, w := range words {
		for e.Measure.Measure(w, fontSize) > width {
			cut := e.fitPrefix(w, width, fontSize)
			if cut == 0 || cut >= len(w) {
				break
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, w[:cut])
			w = w[cut:]
		}
		switch {
		case cur == "":
			cur = w
		case e.Measure.Measure(cur+" "+w, fontSize) <= width:
			cur = cur + " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// fitPrefix returns the byte length of the largest rune prefix of s fitting
// the width.
func (e LayoutEngine) fitPrefix(s string, width, fontSize float64) int {
	last := 0
	for i := range s {
		if i == 0 {
			continue
		}
		if e.Measure.Measure(s[:i], fontSize) > width {
			return last
		}
		last = i
	}
	return last
}

// clip truncates s by runes until it fits the width.
func (e LayoutEngine) clip(s string, width, fontSize float64) string {
	if e.Measure.Measure(s, fontSize) <= width {
		return s
	}
	cut := e.fitPrefix(s, width, fontSize)
	return s[:cut]
}

// paginate packs rows greedily: append until the next row would exceed the
// remaining vertical space, then start a new page. A row taller than a full
// page gets a page of its own rather than being split.
func paginate(rows []Row, bodyH float64) [][]Row {
	pages := [][]Row{}
	var page []Row
	used := 0.0
	for _, r := range rows {
		if len(page) > 0 && used+r.Height > bodyH {
			pages = append(pages, page)
			page = nil
			used = 0
		}
		page = append(page, r)
		used += r.Height
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}
