// Package footer computes the page-footer title band: a fixed 5x7 bitmap
// font, a layout calculator that fits a title string into a strip of rows
// at the bottom of a page, and a pixel-level predicate that the ppm package
// uses to paint that strip.
//
// This package never touches codec bits; it is a rendering collaborator
// only, wired in by the root makocode package's Encode and exercised by the
// ppm package's footer-painting path, never by the dictionary/frame/page core.
package footer

import "github.com/pkg/errors"

// BaseGlyphWidth and BaseGlyphHeight are the unscaled glyph cell dimensions,
// in pixels, before FontScale is applied.
const (
	BaseGlyphWidth  = 5
	BaseGlyphHeight = 7
)

const maxFontScale = 2048

// glyph holds one character's 7-row bitmap, each row a 5-character string
// of '0'/'1'.
type glyph struct {
	symbol byte
	rows   [BaseGlyphHeight]string
}

var glyphs = []glyph{
	{' ', [7]string{"00000", "00000", "00000", "00000", "00000", "00000", "00000"}},
	{'!', [7]string{"00100", "00100", "00100", "00100", "00100", "00000", "00100"}},
	{'"', [7]string{"01010", "01010", "00000", "00000", "00000", "00000", "00000"}},
	{'#', [7]string{"01010", "01010", "11111", "01010", "11111", "01010", "01010"}},
	{'$', [7]string{"00100", "01111", "10100", "01110", "00101", "11110", "00100"}},
	{'%', [7]string{"11001", "11001", "00010", "00100", "01000", "10011", "10011"}},
	{'&', [7]string{"01100", "10010", "10100", "01000", "10101", "10010", "01101"}},
	{'\'', [7]string{"00100", "00100", "00000", "00000", "00000", "00000", "00000"}},
	{'(', [7]string{"00010", "00100", "01000", "01000", "01000", "00100", "00010"}},
	{')', [7]string{"01000", "00100", "00010", "00010", "00010", "00100", "01000"}},
	{'*', [7]string{"00000", "00100", "10101", "01110", "10101", "00100", "00000"}},
	{'+', [7]string{"00000", "00100", "00100", "11111", "00100", "00100", "00000"}},
	{',', [7]string{"00000", "00000", "00000", "00000", "00100", "00100", "01000"}},
	{'-', [7]string{"00000", "00000", "11111", "00000", "00000", "00000", "00000"}},
	{'.', [7]string{"00000", "00000", "00000", "00000", "00000", "00100", "00000"}},
	{'/', [7]string{"00001", "00010", "00100", "01000", "10000", "00000", "00000"}},
	{'0', [7]string{"01110", "10001", "10001", "10001", "10001", "10001", "01110"}},
	{'1', [7]string{"00100", "01100", "00100", "00100", "00100", "00100", "01110"}},
	{'2', [7]string{"01110", "10001", "00001", "00010", "00100", "01000", "11111"}},
	{'3', [7]string{"01110", "10001", "00001", "00110", "00001", "10001", "01110"}},
	{'4', [7]string{"00010", "00110", "01010", "10010", "11111", "00010", "00010"}},
	{'5', [7]string{"11111", "10000", "11110", "00001", "00001", "10001", "01110"}},
	{'6', [7]string{"01110", "10000", "11110", "10001", "10001", "10001", "01110"}},
	{'7', [7]string{"11111", "00001", "00010", "00100", "01000", "01000", "01000"}},
	{'8', [7]string{"01110", "10001", "10001", "01110", "10001", "10001", "01110"}},
	{'9', [7]string{"01110", "10001", "10001", "01111", "00001", "00001", "01110"}},
	{':', [7]string{"00000", "00100", "00000", "00000", "00100", "00000", "00000"}},
	{';', [7]string{"00000", "00100", "00000", "00000", "00100", "00100", "01000"}},
	{'<', [7]string{"00010", "00100", "01000", "10000", "01000", "00100", "00010"}},
	{'=', [7]string{"00000", "11111", "00000", "11111", "00000", "00000", "00000"}},
	{'>', [7]string{"01000", "00100", "00010", "00001", "00010", "00100", "01000"}},
	{'?', [7]string{"01110", "10001", "00010", "00100", "00100", "00000", "00100"}},
	{'@', [7]string{"01110", "10001", "10111", "10101", "10111", "10000", "01110"}},
	{'[', [7]string{"01110", "01000", "01000", "01000", "01000", "01000", "01110"}},
	{'\\', [7]string{"10000", "01000", "00100", "00010", "00001", "00000", "00000"}},
	{']', [7]string{"01110", "00010", "00010", "00010", "00010", "00010", "01110"}},
	{'^', [7]string{"00100", "01010", "10001", "00000", "00000", "00000", "00000"}},
	{'_', [7]string{"00000", "00000", "00000", "00000", "00000", "11111", "00000"}},
	{'`', [7]string{"00100", "00010", "00000", "00000", "00000", "00000", "00000"}},
	{'{', [7]string{"00011", "00100", "00100", "01000", "00100", "00100", "00011"}},
	{'|', [7]string{"00100", "00100", "00100", "00100", "00100", "00100", "00100"}},
	{'}', [7]string{"11000", "00100", "00100", "00010", "00100", "00100", "11000"}},
	{'~', [7]string{"00000", "00000", "01001", "10110", "00000", "00000", "00000"}},
	{'A', [7]string{"01110", "10001", "10001", "11111", "10001", "10001", "10001"}},
	{'B', [7]string{"11110", "10001", "10001", "11110", "10001", "10001", "11110"}},
	{'C', [7]string{"01110", "10001", "10000", "10000", "10000", "10001", "01110"}},
	{'D', [7]string{"11110", "10001", "10001", "10001", "10001", "10001", "11110"}},
	{'E', [7]string{"11111", "10000", "10000", "11110", "10000", "10000", "11111"}},
	{'F', [7]string{"11111", "10000", "10000", "11110", "10000", "10000", "10000"}},
	{'G', [7]string{"01110", "10001", "10000", "10000", "10011", "10001", "01110"}},
	{'H', [7]string{"10001", "10001", "10001", "11111", "10001", "10001", "10001"}},
	{'I', [7]string{"01110", "00100", "00100", "00100", "00100", "00100", "01110"}},
	{'J', [7]string{"00111", "00010", "00010", "00010", "10010", "10010", "01100"}},
	{'K', [7]string{"10001", "10010", "10100", "11000", "10100", "10010", "10001"}},
	{'L', [7]string{"10000", "10000", "10000", "10000", "10000", "10000", "11111"}},
	{'M', [7]string{"10001", "11011", "10101", "10101", "10001", "10001", "10001"}},
	{'N', [7]string{"10001", "11001", "10101", "10011", "10001", "10001", "10001"}},
	{'O', [7]string{"01110", "10001", "10001", "10001", "10001", "10001", "01110"}},
	{'P', [7]string{"11110", "10001", "10001", "11110", "10000", "10000", "10000"}},
	{'Q', [7]string{"01110", "10001", "10001", "10001", "10101", "10010", "01101"}},
	{'R', [7]string{"11110", "10001", "10001", "11110", "10100", "10010", "10001"}},
	{'S', [7]string{"01110", "10001", "10000", "01110", "00001", "10001", "01110"}},
	{'T', [7]string{"11111", "00100", "00100", "00100", "00100", "00100", "00100"}},
	{'U', [7]string{"10001", "10001", "10001", "10001", "10001", "10001", "01110"}},
	{'V', [7]string{"10001", "10001", "10001", "10001", "10001", "01010", "00100"}},
	{'W', [7]string{"10001", "10001", "10001", "10101", "10101", "10101", "01010"}},
	{'X', [7]string{"10001", "10001", "01010", "00100", "01010", "10001", "10001"}},
	{'Y', [7]string{"10001", "10001", "01010", "00100", "00100", "00100", "00100"}},
	{'Z', [7]string{"11111", "00001", "00010", "00100", "01000", "10000", "11111"}},
}

func lookupGlyph(c byte) (glyph, bool) {
	if c >= 'a' && c <= 'z' {
		c = c - 'a' + 'A'
	}
	for _, g := range glyphs {
		if g.symbol == c {
			return g, true
		}
	}
	return glyph{}, false
}

// Layout describes how a title fits into a page's footer band.
type Layout struct {
	HasTitle        bool
	FontScale       int
	GlyphWidth      int
	GlyphHeight     int
	CharSpacing     int
	FooterRows      int // total footer band height, in pixels
	TextTopRow      int // footer-local row (0 at the top of the band) where glyph text begins
	TextLeftCol     int
	TitlePixelWidth int

	title string
}

// ComputeLayout fits title into the bottom of a pageWidth x pageHeight page
// at the given integer font scale. An empty title yields a zero-height
// footer band. Fitting failures (title too wide, scale too large, footer
// band consuming the whole page) are configuration errors.
func ComputeLayout(pageWidth, pageHeight int, title string, fontScale int) (Layout, error) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return Layout{}, errors.New("footer: page dimensions must be positive")
	}
	if title == "" {
		return Layout{}, nil
	}
	if fontScale <= 0 {
		return Layout{}, errors.New("footer: font scale must be positive when a title is given")
	}
	if fontScale > maxFontScale {
		return Layout{}, errors.Errorf("footer: font scale %d exceeds maximum %d", fontScale, maxFontScale)
	}

	glyphWidth := BaseGlyphWidth * fontScale
	glyphHeight := BaseGlyphHeight * fontScale
	charSpacing := fontScale
	margin := fontScale

	titleWidth := len(title)*glyphWidth
	if len(title) > 1 {
		titleWidth += (len(title) - 1) * charSpacing
	}
	if titleWidth > pageWidth {
		return Layout{}, errors.Errorf("footer: title %q at scale %d is %d px wide, wider than the %d px page", title, fontScale, titleWidth, pageWidth)
	}

	footerRows := glyphHeight + 2*margin
	if footerRows >= pageHeight {
		return Layout{}, errors.New("footer: footer band would consume the entire page height")
	}

	textLeft := 0
	if pageWidth > titleWidth {
		textLeft = (pageWidth - titleWidth) / 2
	}

	return Layout{
		HasTitle:        true,
		FontScale:       fontScale,
		GlyphWidth:      glyphWidth,
		GlyphHeight:     glyphHeight,
		CharSpacing:     charSpacing,
		FooterRows:      footerRows,
		TextTopRow:      margin,
		TextLeftCol:     textLeft,
		TitlePixelWidth: titleWidth,
		title:           title,
	}, nil
}

// IsTextPixel reports whether the footer-local pixel at (col, row) - row 0
// at the top of the footer band - falls on a lit bit of the title's glyphs.
func (l Layout) IsTextPixel(col, row int) bool {
	if !l.HasTitle {
		return false
	}
	if row < l.TextTopRow || row >= l.TextTopRow+l.GlyphHeight {
		return false
	}
	if col < l.TextLeftCol || col >= l.TextLeftCol+l.TitlePixelWidth {
		return false
	}
	charSpan := l.GlyphWidth + l.CharSpacing
	if charSpan == 0 {
		return false
	}
	localX := col - l.TextLeftCol
	glyphIndex := localX / charSpan
	if glyphIndex >= len(l.title) {
		return false
	}
	withinChar := localX - glyphIndex*charSpan
	if withinChar >= l.GlyphWidth {
		return false
	}
	localY := row - l.TextTopRow
	gx := withinChar / l.FontScale
	gy := localY / l.FontScale
	if gx >= BaseGlyphWidth || gy >= BaseGlyphHeight {
		return false
	}
	g, ok := lookupGlyph(l.title[glyphIndex])
	if !ok {
		return false
	}
	return g.rows[gy][gx] == '1'
}
