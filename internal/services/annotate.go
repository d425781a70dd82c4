package services

import (
	"unicode/utf8"
)

// Measurer estimates rendered text width in document units for a font size
// in points. It stays behind an interface so the approximate metric can be
// swapped for exact glyph metrics without touching placement logic.
type Measurer interface {
	Measure(text string, fontSize float64) float64
}

// ApproxMeasurer is the fixed-average-glyph-width stand-in for real font
// metrics: every glyph is assumed to occupy the same fraction of the font
// size. Good enough for clickable regions when rectangles are sized
// generously.
type ApproxMeasurer struct {
	GlyphFactor float64 // average glyph width as a fraction of the font size
}

// Points to millimeters, the unit catalog layouts run in.
const ptToMM = 25.4 / 72.0

func (m ApproxMeasurer) Measure(text string, fontSize float64) float64 {
	f := m.GlyphFactor
	if f <= 0 {
		f = 0.5
	}
	return float64(utf8.RuneCountInString(text)) * fontSize * f * ptToMM
}

// LinkTarget is one clickable token inside a cell: the URL plus the short
// display token rendered for it.
type LinkTarget struct {
	URL   string
	Label string
}

// Rect is a clickable region in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// linkSlotWidth is the uniform width one link token occupies. Sizing every
// slot to the widest token plus breathing room keeps rectangles clickable
// despite the approximate metric, without overlapping neighbours.
func linkSlotWidth(links []LinkTarget, m Measurer, fontSize float64) float64 {
	w := m.Measure("0", fontSize)
	for _, l := range links {
		if lw := m.Measure(l.Label, fontSize); lw > w {
			w = lw
		}
	}
	// one glyph of padding between tokens
	return w + m.Measure(" ", fontSize)
}

// TokensPerLine returns how many link tokens fit on one wrapped line of a
// cell. The layout engine and the placer both use it, so rectangles always
// bound the tokens as actually wrapped.
func TokensPerLine(cellW float64, links []LinkTarget, m Measurer, fontSize float64) int {
	slot := linkSlotWidth(links, m, fontSize)
	if slot <= 0 {
		return 1
	}
	per := int(cellW / slot)
	if per < 1 {
		per = 1
	}
	return per
}

// PlaceLinkRects computes one rectangle per link token for a cell at
// (cellX, cellY) with width cellW. Token i sits on line i/perLine at slot
// i%perLine. Rectangles never extend past the cell's right edge, so they
// cannot bleed into an adjacent column. Zero links yields zero rectangles.
func PlaceLinkRects(cellX, cellY, cellW float64, links []LinkTarget, m Measurer, fontSize, lineHeight float64) []Rect {
	if len(links) == 0 {
		return nil
	}

	slot := linkSlotWidth(links, m, fontSize)
	perLine := TokensPerLine(cellW, links, m, fontSize)

	rects := make([]Rect, 0, len(links))
	for i := range links {
		line := i / perLine
		pos := i % perLine
		x := cellX + float64(pos)*slot
		w := slot
		if x+w > cellX+cellW {
			w = cellX + cellW - x
		}
		if w <= 0 {
			w = cellW / float64(perLine)
			x = cellX + float64(pos)*w
		}
		rects = append(rects, Rect{
			X: x,
			Y: cellY + float64(line)*lineHeight,
			W: w,
			H: lineHeight,
		})
	}
	return rects
}
