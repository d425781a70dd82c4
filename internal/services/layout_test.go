package services

import (
	"errors"
	"fmt"
	"testing"
)

// runeMeasurer gives every rune a fixed width, ignoring the font size.
// Deterministic metrics keep layout assertions exact.
type runeMeasurer struct {
	w float64
}

func (m runeMeasurer) Measure(text string, _ float64) float64 {
	return float64(len([]rune(text))) * m.w
}

func testSpec() TableSpec {
	return TableSpec{
		Columns: []Column{
			{Header: "Name", Width: 12, Wrap: true},
			{Header: "Code", Width: 8},
		},
		FontSize:   9,
		LineHeight: 5,
		BodyHeight: 20, // four single lines per page
	}
}

func textRow(name, code string) Row {
	return Row{Cells: []Cell{{Text: name}, {Text: code}}}
}

func TestLayoutWrapNeverExceedsColumnWidth(t *testing.T) {
	m := runeMeasurer{w: 1}
	eng := LayoutEngine{Measure: m}
	spec := testSpec()

	names := []string{
		"short",
		"several words that wrap around",
		"anextremelylongunbrokenword",
		"",
	}
	lay := eng.LayoutRows(spec, len(names),
		func(i int) (Row, error) { return textRow(names[i], "C-1"), nil },
		func(i int) string { return names[i] },
	)

	if lay.Mode != ModeNormal {
		t.Fatalf("expected normal mode, got %s", lay.Mode)
	}
	for _, page := range lay.Pages {
		for _, row := range page {
			for ci, cell := range row.Cells {
				inner := spec.Columns[ci].Width - 2*cellPad
				for _, line := range cell.Lines {
					if m.Measure(line, spec.FontSize) > inner {
						t.Fatalf("line %q exceeds column %d width %.1f", line, ci, inner)
					}
				}
			}
		}
	}
}

func TestLayoutRowCountMatchesInput(t *testing.T) {
	eng := LayoutEngine{Measure: runeMeasurer{w: 1}}
	spec := testSpec()

	const n = 23
	lay := eng.LayoutRows(spec, n,
		func(i int) (Row, error) { return textRow(fmt.Sprintf("item %d", i), "C"), nil },
		func(i int) string { return fmt.Sprintf("item %d", i) },
	)

	if got := lay.RowCount(); got != n {
		t.Fatalf("row count across pages = %d, want %d", got, n)
	}
}

func TestLayoutNeverSplitsRowAcrossPages(t *testing.T) {
	eng := LayoutEngine{Measure: runeMeasurer{w: 1}}
	spec := testSpec()

	// tall wrapped rows force pagination
	long := "one two three four five six seven eight nine ten"
	lay := eng.LayoutRows(spec, 9,
		func(i int) (Row, error) { return textRow(long, "C"), nil },
		func(i int) string { return long },
	)

	if len(lay.Pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(lay.Pages))
	}
	for pi, page := range lay.Pages {
		var used float64
		for _, row := range page {
			used += row.Height
		}
		if len(page) > 1 && used > spec.BodyHeight {
			t.Fatalf("page %d overfilled: %.1f > %.1f", pi, used, spec.BodyHeight)
		}
	}
}

func TestLayoutDegradesOnRowBuildFailure(t *testing.T) {
	eng := LayoutEngine{Measure: runeMeasurer{w: 1}}
	spec := testSpec()

	const n = 5
	lay := eng.LayoutRows(spec, n,
		func(i int) (Row, error) {
			if i == 2 {
				return Row{}, errors.New("malformed record")
			}
			return textRow("ok", "C"), nil
		},
		func(i int) string { return fmt.Sprintf("record %d", i) },
	)

	if lay.Mode != ModeDegraded {
		t.Fatalf("expected degraded mode, got %s", lay.Mode)
	}
	if got := lay.RowCount(); got != n {
		t.Fatalf("degraded output lost records: %d of %d", got, n)
	}
	for _, page := range lay.Pages {
		for _, row := range page {
			if len(row.Cells) != 1 || len(row.Cells[0].Lines) != 1 {
				t.Fatalf("degraded rows must be one flat line, got %+v", row)
			}
		}
	}
}

func TestLayoutLinkCellWrapsLikePlacer(t *testing.T) {
	m := runeMeasurer{w: 2}
	eng := LayoutEngine{Measure: m}
	spec := TableSpec{
		Columns:    []Column{{Header: "Photos", Width: 12, Wrap: true}},
		FontSize:   9,
		LineHeight: 5,
		BodyHeight: 100,
	}

	links := make([]LinkTarget, 7)
	for i := range links {
		links[i] = LinkTarget{URL: "https://example.com", Label: fmt.Sprint(i + 1)}
	}

	lay := eng.LayoutRows(spec, 1,
		func(int) (Row, error) {
			return Row{Cells: []Cell{{Text: "1 2 3 4 5 6 7", Links: links}}}, nil
		},
		func(int) string { return "" },
	)

	inner := spec.Columns[0].Width - 2*cellPad
	perLine := TokensPerLine(inner, links, m, spec.FontSize)
	wantLines := (len(links) + perLine - 1) / perLine

	cell := lay.Pages[0][0].Cells[0]
	if len(cell.Lines) != wantLines {
		t.Fatalf("link cell wrapped to %d lines, placer expects %d", len(cell.Lines), wantLines)
	}
	if lay.Pages[0][0].Height != float64(wantLines)*spec.LineHeight {
		t.Fatalf("row height %.1f does not match %d wrapped lines", lay.Pages[0][0].Height, wantLines)
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	eng := LayoutEngine{Measure: runeMeasurer{w: 1}}
	lay := eng.LayoutRows(testSpec(), 0,
		func(int) (Row, error) { return Row{}, nil },
		func(int) string { return "" },
	)
	if len(lay.Pages) != 0 || lay.Mode != ModeNormal {
		t.Fatalf("empty input should produce no pages in normal mode, got %+v", lay)
	}
}
