// Package ppm reads and writes MakoCode's page container: a plain-text
// (P3) PPM image carrying a block of MAKOCODE_* metadata comments, a
// pixel grid whose top rows are the payload data area and whose bottom
// footer_rows rows are caller-owned (title rendering, typically), and
// width/height/maxval fields per the PPM format itself.
//
// The codec never interprets footer-row pixels; ReadPage simply skips
// them when packing data bits, and WritePage paints them from a caller
// supplied predicate (or leaves them blank if none is given).
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/justinbass/makocode/internal/bitio"
	"github.com/justinbass/makocode/page"
	"github.com/justinbass/makocode/palette"
)

// Metadata comment keys written into every page's comment block.
const (
	keyColorChannels = "MAKOCODE_COLOR_CHANNELS"
	keyBits          = "MAKOCODE_BITS"
	keyPageCount     = "MAKOCODE_PAGE_COUNT"
	keyPageIndex     = "MAKOCODE_PAGE_INDEX"
	keyPageBits      = "MAKOCODE_PAGE_BITS"
	keyPageWidthPx   = "MAKOCODE_PAGE_WIDTH_PX"
	keyPageHeightPx  = "MAKOCODE_PAGE_HEIGHT_PX"
	keyFooterRows    = "MAKOCODE_FOOTER_ROWS"
	keyTitleFont     = "MAKOCODE_TITLE_FONT"
)

const maxSampleValue = 255

// IsTextPixel reports whether the footer pixel at (col, footerRow) - with
// footerRow counted from the top of the footer band, starting at 0 - should
// be rendered in the foreground ink color.
type IsTextPixel func(col, footerRow int) bool

// WritePage writes one page's plain PPM container: magic, metadata
// comments, dimensions, and the pixel grid. bits must hold exactly
// meta.PageBits meaningful bits (see page.Slice); footer rows, if any, are
// painted via isText (nil means a blank footer).
func WritePage(w io.Writer, meta page.Metadata, bits []byte, isText IsTextPixel) error {
	sampleBits, err := palette.SampleBits(meta.Mode)
	if err != nil {
		return err
	}
	bg, err := palette.BackgroundColor(meta.Mode)
	if err != nil {
		return err
	}
	fg, err := palette.ForegroundColor(meta.Mode)
	if err != nil {
		return err
	}
	dataRows := meta.Height - meta.FooterRows
	if dataRows < 0 {
		return errors.New("ppm: footer rows exceed page height")
	}

	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "P3\n")
	fmt.Fprintf(bw, "# %s %d\n", keyColorChannels, meta.Mode)
	fmt.Fprintf(bw, "# %s %d\n", keyBits, meta.PayloadBits)
	fmt.Fprintf(bw, "# %s %d\n", keyPageCount, meta.PageCount)
	if meta.Index != 0 {
		fmt.Fprintf(bw, "# %s %d\n", keyPageIndex, meta.Index)
	}
	fmt.Fprintf(bw, "# %s %d\n", keyPageBits, meta.PageBits)
	fmt.Fprintf(bw, "# %s %d\n", keyPageWidthPx, meta.Width)
	fmt.Fprintf(bw, "# %s %d\n", keyPageHeightPx, meta.Height)
	if meta.FooterRows > 0 {
		fmt.Fprintf(bw, "# %s %d\n", keyFooterRows, meta.FooterRows)
	}
	if meta.HasTitleFont {
		fmt.Fprintf(bw, "# %s %d\n", keyTitleFont, meta.TitleFontScale)
	}
	fmt.Fprintf(bw, "%d %d\n", meta.Width, meta.Height)
	fmt.Fprintf(bw, "%d\n", maxSampleValue)

	r := bitio.NewReader(bits, meta.PageBits)
	for row := 0; row < meta.Height; row++ {
		for col := 0; col < meta.Width; col++ {
			var rgb palette.RGB
			if row < dataRows {
				s := int(r.ReadBits(sampleBits))
				if r.Failed() {
					return errors.New("ppm: ran out of data bits before the data area was filled")
				}
				rgb, err = palette.SampleToRGB(meta.Mode, s)
				if err != nil {
					return err
				}
			} else {
				if isText != nil && isText(col, row-dataRows) {
					rgb = fg
				} else {
					rgb = bg
				}
			}
			fmt.Fprintf(bw, "%d %d %d\n", rgb.R, rgb.G, rgb.B)
		}
	}

	return errors.Wrap(bw.Flush(), "ppm: flush page output")
}

// ReadPage parses one page's plain PPM container, returning its merged
// metadata and the data-area bits packed LSB-first, sample by sample, in
// row-major pixel order. modeOverride forces the color mode instead of
// trusting the page's own MAKOCODE_COLOR_CHANNELS comment; pass
// palette.ModeUnspecified to require the comment to be present.
func ReadPage(r io.Reader, modeOverride palette.Mode) (page.Metadata, []byte, error) {
	sc := &scanner{br: bufio.NewReader(r)}

	magic, isComment, err := sc.next()
	if err != nil {
		return page.Metadata{}, nil, errors.Wrap(err, "ppm: read magic number")
	}
	if isComment || magic != "P3" {
		return page.Metadata{}, nil, errors.Errorf("ppm: expected P3 magic, got %q", magic)
	}

	var meta page.Metadata
	haveMode := false

	width, err := sc.nextUint(&meta)
	if err != nil {
		return page.Metadata{}, nil, errors.Wrap(err, "ppm: read width")
	}
	height, err := sc.nextUint(&meta)
	if err != nil {
		return page.Metadata{}, nil, errors.Wrap(err, "ppm: read height")
	}
	maxVal, err := sc.nextUint(&meta)
	if err != nil {
		return page.Metadata{}, nil, errors.Wrap(err, "ppm: read maxval")
	}
	if maxVal != maxSampleValue {
		return page.Metadata{}, nil, errors.Errorf("ppm: unsupported maxval %d, want %d", maxVal, maxSampleValue)
	}

	if meta.Mode != palette.ModeUnspecified {
		haveMode = true
	}
	meta.Width = int(width)
	meta.Height = int(height)

	if modeOverride != palette.ModeUnspecified {
		meta.Mode = modeOverride
		haveMode = true
	}
	if !haveMode {
		return page.Metadata{}, nil, errors.New("ppm: color mode not specified by caller or by page metadata")
	}

	sampleBits, err := palette.SampleBits(meta.Mode)
	if err != nil {
		return page.Metadata{}, nil, err
	}
	dataRows := meta.Height - meta.FooterRows
	if dataRows < 0 {
		return page.Metadata{}, nil, errors.New("ppm: footer rows exceed page height")
	}

	w := bitio.NewWriter()
	for row := 0; row < meta.Height; row++ {
		for col := 0; col < meta.Width; col++ {
			rgb, err := sc.nextRGB(&meta)
			if err != nil {
				return page.Metadata{}, nil, errors.Wrapf(err, "ppm: read pixel at row %d col %d", row, col)
			}
			if row >= dataRows {
				continue
			}
			s, err := palette.RGBToSample(meta.Mode, rgb)
			if err != nil {
				return page.Metadata{}, nil, errors.Wrapf(err, "ppm: decode pixel at row %d col %d", row, col)
			}
			if err := w.WriteBits(uint64(s), sampleBits); err != nil {
				return page.Metadata{}, nil, errors.Wrap(err, "ppm: pack data bit")
			}
		}
	}
	w.Align()

	cap := uint64(meta.Width) * uint64(dataRows) * uint64(sampleBits)
	if meta.PageBits != 0 && meta.PageBits != cap {
		return page.Metadata{}, nil, errors.Errorf("ppm: metadata page capacity %d disagrees with computed capacity %d", meta.PageBits, cap)
	}
	meta.PageBits = cap

	return meta, w.Bytes(), nil
}

// scanner tokenizes a plain PPM stream, routing "# KEY VALUE" comment
// lines into meta as they are encountered and returning every other
// whitespace-delimited token to the caller.
type scanner struct {
	br *bufio.Reader
}

func (s *scanner) next() (tok string, isComment bool, err error) {
	for {
		r, _, err := s.br.ReadRune()
		if err != nil {
			return "", false, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		if r == '#' {
			line, lerr := s.br.ReadString('\n')
			if lerr != nil && lerr != io.EOF {
				return "", false, lerr
			}
			return strings.TrimRight(line, "\r\n"), true, nil
		}
		var sb strings.Builder
		sb.WriteRune(r)
		for {
			r2, _, err := s.br.ReadRune()
			if err != nil {
				break
			}
			if unicode.IsSpace(r2) {
				break
			}
			if r2 == '#' {
				s.br.UnreadRune()
				break
			}
			sb.WriteRune(r2)
		}
		return sb.String(), false, nil
	}
}

// nextUint returns the next non-comment token as an unsigned integer,
// absorbing any metadata comments encountered along the way into meta.
func (s *scanner) nextUint(meta *page.Metadata) (uint64, error) {
	for {
		tok, isComment, err := s.next()
		if err != nil {
			return 0, err
		}
		if isComment {
			if err := applyComment(meta, tok); err != nil {
				return 0, err
			}
			continue
		}
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "ppm: expected integer token, got %q", tok)
		}
		return v, nil
	}
}

// nextRGB reads the next three non-comment integer tokens as an RGB
// triplet, absorbing any metadata comments encountered along the way.
func (s *scanner) nextRGB(meta *page.Metadata) (palette.RGB, error) {
	var vals [3]uint64
	for i := range vals {
		v, err := s.nextUint(meta)
		if err != nil {
			return palette.RGB{}, err
		}
		if v > maxSampleValue {
			return palette.RGB{}, errors.Errorf("ppm: sample value %d exceeds maxval %d", v, maxSampleValue)
		}
		vals[i] = v
	}
	return palette.RGB{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2])}, nil
}

// applyComment parses one "# KEY VALUE" comment line (key/value already
// stripped of the leading '#') and merges it into meta.
func applyComment(meta *page.Metadata, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	key := fields[0]
	var value string
	if len(fields) > 1 {
		value = strings.Join(fields[1:], " ")
	}

	switch key {
	case keyColorChannels:
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.Mode = palette.Mode(n)
	case keyBits:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.PayloadBits = n
	case keyPageCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.PageCount = n
	case keyPageIndex:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.Index = n
	case keyPageBits:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.PageBits = n
	case keyPageWidthPx:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.Width = n
	case keyPageHeightPx:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.Height = n
	case keyFooterRows:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.FooterRows = n
	case keyTitleFont:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "ppm: parse %s", key)
		}
		meta.HasTitleFont = true
		meta.TitleFontScale = n
	}
	return nil
}
