// Package page implements MakoCode's multi-page layout: capacity math,
// splitting a frame's bits across fixed-size pages, and rejoining an
// ordered list of pages back into one frame bit buffer.
//
// A page's data area is the top (height - footerRows) rows of the image;
// only those rows carry payload bits. Capacity is therefore
// width * dataRows * sampleBits bits per page, and a frame spanning more
// bits than one page holds is split across ceil(frameBits/cap) pages,
// numbered 1..N, with the final page's unused tail treated as zero bits.
//
// Mode-3 rotation whitening (see the frame package) always runs on the full,
// already-joined frame buffer - never on an individual page's bit range -
// so this package only ever deals in plain bit offsets, never palette or
// rotation concerns.
package page

import (
	"github.com/pkg/errors"

	"github.com/justinbass/makocode/internal/bitio"
	"github.com/justinbass/makocode/palette"
)

// DefaultWidth and DefaultHeight are the A4-at-300-DPI page dimensions used
// when a caller does not specify its own.
const (
	DefaultWidth  = 2480
	DefaultHeight = 3508
)

// Metadata is the set of fields every page of one encode must agree on,
// except for Index which varies per page.
type Metadata struct {
	Mode           palette.Mode
	PayloadBits    uint64 // L_c, the frame's 64-bit header value
	PageCount      int
	Index          int // 1-based; 0 means "not present in this page's metadata"
	PageBits       uint64 // capacity in bits, i.e. cap
	Width          int
	Height         int
	FooterRows     int
	HasTitleFont   bool
	TitleFontScale int
}

// Capacity returns the number of payload bits one page can carry, given its
// pixel geometry and the active color mode's sample width, along with the
// number of data rows (height-footerRows) that capacity implies.
func Capacity(width, height, footerRows int, mode palette.Mode) (cap uint64, dataRows int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, errors.New("page: width and height must be positive")
	}
	if footerRows < 0 || footerRows >= height {
		return 0, 0, errors.New("page: footer rows must be non-negative and less than height")
	}
	sampleBits, err := palette.SampleBits(mode)
	if err != nil {
		return 0, 0, err
	}
	dataRows = height - footerRows
	cap = uint64(width) * uint64(dataRows) * uint64(sampleBits)
	return cap, dataRows, nil
}

// Count returns the number of pages (at least 1, even for an empty frame)
// needed to carry frameBits bits at cap bits per page.
func Count(frameBits uint64, cap uint64) (int, error) {
	if cap == 0 {
		return 0, errors.New("page: zero capacity cannot carry any bits")
	}
	n := frameBits / cap
	if frameBits%cap != 0 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return int(n), nil
}

// BitRange returns the half-open bit range [start, end) of the frame that
// page k (1-indexed) covers, per the fixed per-page capacity cap.
func BitRange(k int, cap uint64, frameBits uint64) (start, end uint64) {
	start = uint64(k-1) * cap
	end = start + cap
	if end > frameBits {
		end = frameBits
	}
	if start > frameBits {
		start = frameBits
	}
	return start, end
}

// Slice extracts page k's bit range from frame (a byte-aligned buffer of
// frameBits meaningful bits), zero-filling any unused tail so the result is
// always exactly cap bits, byte-aligned on return.
func Slice(frame []byte, frameBits uint64, k int, cap uint64) []byte {
	start, end := BitRange(k, cap, frameBits)
	r := bitio.NewReader(frame, frameBits)
	// Skip to start; ReadBit underflow past frameBits is impossible here
	// since start <= frameBits by construction.
	for i := uint64(0); i < start; i++ {
		r.ReadBit()
	}
	w := bitio.NewWriter()
	for i := start; i < end; i++ {
		w.WriteBit(r.ReadBit())
	}
	// Zero-fill the remainder of this page's capacity.
	for i := end; i < start+cap; i++ {
		w.WriteBit(0)
	}
	w.Align()
	return w.Bytes()
}

// Join concatenates N ordered page bit-chunks, each exactly cap bits (per
// Slice's contract), into one byte-aligned frame buffer suitable for
// frame.Parse. Chunk i must carry at least cap bits; any bits beyond cap in
// a chunk are ignored.
func Join(chunks [][]byte, cap uint64) []byte {
	w := bitio.NewWriter()
	for _, chunk := range chunks {
		r := bitio.NewReader(chunk, cap)
		for i := uint64(0); i < cap; i++ {
			w.WriteBit(r.ReadBit())
		}
	}
	w.Align()
	return w.Bytes()
}

// CheckConsistency verifies that every page's metadata agrees on all fields
// except Index, and that if any page carries an Index, every page does and
// the sequence runs 1..N without gaps or repeats. It returns the merged
// metadata (with the representative Index left at 0).
func CheckConsistency(pages []Metadata) (Metadata, error) {
	if len(pages) == 0 {
		return Metadata{}, errors.New("page: no pages to aggregate")
	}
	merged := pages[0]
	haveIndex := merged.Index != 0
	merged.Index = 0

	for i := 1; i < len(pages); i++ {
		p := pages[i]
		if p.Mode != merged.Mode ||
			p.PayloadBits != merged.PayloadBits ||
			p.PageCount != merged.PageCount ||
			p.PageBits != merged.PageBits ||
			p.Width != merged.Width ||
			p.Height != merged.Height ||
			p.FooterRows != merged.FooterRows {
			return Metadata{}, errors.Errorf("page: inconsistent metadata between page 1 and page %d", i+1)
		}
		if p.HasTitleFont != merged.HasTitleFont || (p.HasTitleFont && p.TitleFontScale != merged.TitleFontScale) {
			return Metadata{}, errors.Errorf("page: inconsistent title font metadata on page %d", i+1)
		}
		if (p.Index != 0) != haveIndex {
			return Metadata{}, errors.New("page: page index metadata present on some pages but not others")
		}
	}

	if haveIndex {
		for i, p := range pages {
			if p.Index != i+1 {
				return Metadata{}, errors.Errorf("page: out-of-order pages; expected index %d, got %d", i+1, p.Index)
			}
		}
	}

	if merged.PageCount != 0 && merged.PageCount != len(pages) {
		return Metadata{}, errors.Errorf("page: metadata declares %d pages, got %d", merged.PageCount, len(pages))
	}

	return merged, nil
}
