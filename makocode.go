// Package makocode turns an arbitrary byte stream into one or more
// printable-raster PPM pages, and back.
//
// The pipeline is: compress the payload with the 12-bit LZW dictionary
// codec (package dictionary), frame it behind a 64-bit length header and,
// for the 8-color palette, whiten it with a per-byte rotation (package
// frame), split the framed bits across fixed-capacity pages (package page),
// and render each page's bits as palette-indexed pixels in a plain PPM
// container (package ppm). Decode runs the same pipeline in reverse.
package makocode

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/justinbass/makocode/dictionary"
	"github.com/justinbass/makocode/footer"
	"github.com/justinbass/makocode/frame"
	"github.com/justinbass/makocode/page"
	"github.com/justinbass/makocode/palette"
	"github.com/justinbass/makocode/ppm"
)

// Options configures one Encode call.
type Options struct {
	Mode       palette.Mode
	PageWidth  int
	PageHeight int
	// Title, if non-empty, is rendered in the page footer at FontScale; the
	// footer row count is derived from it, not supplied directly.
	Title     string
	FontScale int
}

// DefaultOptions returns the page.DefaultWidth x page.DefaultHeight, 8-color,
// untitled configuration.
func DefaultOptions() Options {
	return Options{
		Mode:       palette.ModeRGBCMYWB,
		PageWidth:  page.DefaultWidth,
		PageHeight: page.DefaultHeight,
		FontScale:  4,
	}
}

// Encode compresses and frames payload, then splits the result across as
// many pages as opts.PageWidth x opts.PageHeight can hold, returning each
// page's raw PPM bytes in order.
func Encode(payload []byte, opts Options) ([][]byte, error) {
	layout, err := footer.ComputeLayout(opts.PageWidth, opts.PageHeight, opts.Title, opts.FontScale)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: compute footer layout")
	}

	cap, _, err := page.Capacity(opts.PageWidth, opts.PageHeight, layout.FooterRows, opts.Mode)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: compute page capacity")
	}

	compressed, bitLen, err := dictionary.Compress(payload)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: compress payload")
	}
	frameBytes, err := frame.Build(compressed, bitLen, opts.Mode)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: build frame")
	}
	frameBits := uint64(len(frameBytes)) * 8

	n, err := page.Count(frameBits, cap)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: compute page count")
	}

	var isText ppm.IsTextPixel
	if layout.HasTitle {
		isText = layout.IsTextPixel
	}

	pages := make([][]byte, n)
	for k := 1; k <= n; k++ {
		bits := page.Slice(frameBytes, frameBits, k, cap)
		meta := page.Metadata{
			Mode:           opts.Mode,
			PayloadBits:    bitLen,
			PageCount:      n,
			Index:          k,
			PageBits:       cap,
			Width:          opts.PageWidth,
			Height:         opts.PageHeight,
			FooterRows:     layout.FooterRows,
			HasTitleFont:   layout.HasTitle,
			TitleFontScale: opts.FontScale,
		}
		var buf bytes.Buffer
		if err := ppm.WritePage(&buf, meta, bits, isText); err != nil {
			return nil, errors.Wrapf(err, "makocode: write page %d of %d", k, n)
		}
		pages[k-1] = buf.Bytes()
	}
	return pages, nil
}

// Decode reassembles the original payload from an ordered list of page PPM
// buffers. modeOverride forces the color mode instead of trusting each
// page's own metadata comment; pass palette.ModeUnspecified to require
// every page's metadata to agree on it.
func Decode(pages [][]byte, modeOverride palette.Mode) ([]byte, error) {
	if len(pages) == 0 {
		return nil, errors.New("makocode: no pages to decode")
	}

	metas := make([]page.Metadata, len(pages))
	chunks := make([][]byte, len(pages))
	for i, p := range pages {
		meta, bits, err := ppm.ReadPage(bytes.NewReader(p), modeOverride)
		if err != nil {
			return nil, errors.Wrapf(err, "makocode: read page %d", i+1)
		}
		metas[i] = meta
		chunks[i] = bits
	}

	merged, err := page.CheckConsistency(metas)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: reconcile page metadata")
	}

	joined := page.Join(chunks, merged.PageBits)
	compressed, bitLen, err := frame.Parse(joined, merged.Mode, &merged.PayloadBits)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: parse joined frame")
	}

	payload, err := dictionary.Decompress(compressed, bitLen)
	if err != nil {
		return nil, errors.Wrap(err, "makocode: decompress payload")
	}
	return payload, nil
}

// lcgMultiplier and lcgIncrement are the constants of the classic Knuth/PCG
// linear congruential generator; SelfTest uses it only to manufacture a
// reproducible payload, never for anything cryptographic.
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 0x9e3779b97f4a7c15
)

func deterministicBytes(count int, seed uint64) []byte {
	if seed == 0 {
		seed = 0x1234abcdf00dbeef
	}
	out := make([]byte, count)
	state := seed
	for i := range out {
		state = state*lcgMultiplier + lcgIncrement
		out[i] = byte(state >> 32)
	}
	return out
}

// SelfTest generates a deterministic payload sized to span exactly two
// pages at the given color mode and default page geometry, round-trips it
// through Encode and Decode, and fails if anything along the way disagrees.
func SelfTest(mode palette.Mode) error {
	opts := Options{Mode: mode, PageWidth: page.DefaultWidth, PageHeight: page.DefaultHeight}
	cap, _, err := page.Capacity(opts.PageWidth, opts.PageHeight, 0, mode)
	if err != nil {
		return errors.Wrap(err, "makocode: self-test capacity")
	}

	size := int(cap/8) + 1
	if size < 32 {
		size = 32
	}
	const maxSize = 1 << 22

	var payload []byte
	for {
		payload = deterministicBytes(size, uint64(mode)<<32|uint64(size))
		compressed, bitLen, err := dictionary.Compress(payload)
		if err != nil {
			return errors.Wrap(err, "makocode: self-test compress")
		}
		frameBytes, err := frame.Build(compressed, bitLen, mode)
		if err != nil {
			return errors.Wrap(err, "makocode: self-test frame")
		}
		frameBits := uint64(len(frameBytes)) * 8
		if frameBits > cap && frameBits <= 2*cap {
			break
		}
		if frameBits > 2*cap || size >= maxSize {
			return errors.New("makocode: self-test could not construct a two-page payload")
		}
		size *= 2
		if size > maxSize {
			size = maxSize
		}
	}

	pages, err := Encode(payload, opts)
	if err != nil {
		return errors.Wrap(err, "makocode: self-test encode")
	}
	if len(pages) != 2 {
		return errors.Errorf("makocode: self-test expected 2 pages, got %d", len(pages))
	}

	got, err := Decode(pages, palette.ModeUnspecified)
	if err != nil {
		return errors.Wrap(err, "makocode: self-test decode")
	}
	if !bytes.Equal(got, payload) {
		return errors.New("makocode: self-test round trip produced different bytes")
	}
	return nil
}
