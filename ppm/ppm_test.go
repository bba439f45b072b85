package ppm_test

import (
	"bytes"
	"testing"

	"github.com/justinbass/makocode/page"
	"github.com/justinbass/makocode/palette"
	"github.com/justinbass/makocode/ppm"
)

func TestWriteReadRoundTripNoFooter(t *testing.T) {
	meta := page.Metadata{
		Mode:        palette.ModeCMYW,
		PayloadBits: 42,
		PageCount:   1,
		Width:       4,
		Height:      4,
	}
	cap, dataRows, err := page.Capacity(meta.Width, meta.Height, meta.FooterRows, meta.Mode)
	if err != nil {
		t.Fatal(err)
	}
	if dataRows != meta.Height {
		t.Fatalf("dataRows = %d, want %d", dataRows, meta.Height)
	}
	meta.PageBits = cap

	bits := make([]byte, (cap+7)/8)
	for i := range bits {
		bits[i] = byte(i*37 + 11)
	}

	var buf bytes.Buffer
	if err := ppm.WritePage(&buf, meta, bits, nil); err != nil {
		t.Fatal(err)
	}

	gotMeta, gotBits, err := ppm.ReadPage(&buf, palette.ModeUnspecified)
	if err != nil {
		t.Fatal(err)
	}
	if gotMeta.Mode != meta.Mode || gotMeta.Width != meta.Width || gotMeta.Height != meta.Height {
		t.Fatalf("metadata mismatch: got %+v, want %+v", gotMeta, meta)
	}
	if gotMeta.PageBits != cap {
		t.Fatalf("PageBits = %d, want %d", gotMeta.PageBits, cap)
	}

	wantBits := make([]byte, (cap+7)/8)
	copy(wantBits, bits)
	if !bytes.Equal(gotBits, wantBits) {
		t.Fatalf("decoded bits mismatch: got % x, want % x", gotBits, wantBits)
	}
}

func TestWriteReadRoundTripWithFooter(t *testing.T) {
	meta := page.Metadata{
		Mode:        palette.ModeGray,
		PayloadBits: 8,
		PageCount:   1,
		Width:       8,
		Height:      10,
		FooterRows:  2,
	}
	cap, dataRows, err := page.Capacity(meta.Width, meta.Height, meta.FooterRows, meta.Mode)
	if err != nil {
		t.Fatal(err)
	}
	meta.PageBits = cap

	bits := make([]byte, (cap+7)/8)
	bits[0] = 0xA5

	isText := func(col, row int) bool {
		return (col+row)%2 == 0
	}

	var buf bytes.Buffer
	if err := ppm.WritePage(&buf, meta, bits, isText); err != nil {
		t.Fatal(err)
	}

	gotMeta, gotBits, err := ppm.ReadPage(&buf, palette.ModeUnspecified)
	if err != nil {
		t.Fatal(err)
	}
	if gotMeta.FooterRows != 2 {
		t.Fatalf("FooterRows = %d, want 2", gotMeta.FooterRows)
	}
	_ = dataRows
	wantBits := make([]byte, (cap+7)/8)
	wantBits[0] = 0xA5
	if !bytes.Equal(gotBits, wantBits) {
		t.Fatalf("decoded bits mismatch (footer rows should be excluded): got % x, want % x", gotBits, wantBits)
	}
}

func TestReadPageRejectsUnknownColorWithoutOverride(t *testing.T) {
	raw := "P3\n2 2\n255\n255 255 255\n0 0 0\n255 255 255\n0 0 0\n"
	_, _, err := ppm.ReadPage(bytes.NewReader([]byte(raw)), palette.ModeUnspecified)
	if err == nil {
		t.Fatal("expected error when no color mode is available from override or metadata")
	}
}

func TestReadPageHonorsModeOverride(t *testing.T) {
	raw := "P3\n2 2\n255\n255 255 255\n0 0 0\n0 0 0\n255 255 255\n"
	meta, bits, err := ppm.ReadPage(bytes.NewReader([]byte(raw)), palette.ModeGray)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Mode != palette.ModeGray {
		t.Fatalf("Mode = %d, want ModeGray", meta.Mode)
	}
	if len(bits) == 0 {
		t.Fatal("expected packed data bits")
	}
}

func TestReadPageRejectsUnsupportedMaxval(t *testing.T) {
	raw := "P3\n1 1\n65535\n0 0 0\n"
	_, _, err := ppm.ReadPage(bytes.NewReader([]byte(raw)), palette.ModeGray)
	if err == nil {
		t.Fatal("expected error for unsupported maxval")
	}
}

func TestReadPageRejectsPaletteIntrusion(t *testing.T) {
	// A valid mode-1 (gray) PPM with one data-area pixel replaced by a
	// color absent from the gray palette (128,128,128) must be rejected.
	raw := "P3\n2 2\n255\n255 255 255\n128 128 128\n0 0 0\n255 255 255\n"
	_, _, err := ppm.ReadPage(bytes.NewReader([]byte(raw)), palette.ModeGray)
	if err == nil {
		t.Fatal("expected error when a data-area pixel's color is outside the active palette")
	}
}

func TestReadPageRejectsPageBitsDisagreement(t *testing.T) {
	raw := "P3\n# MAKOCODE_PAGE_BITS 999999\n2 2\n255\n255 255 255\n0 0 0\n0 0 0\n255 255 255\n"
	_, _, err := ppm.ReadPage(bytes.NewReader([]byte(raw)), palette.ModeGray)
	if err == nil {
		t.Fatal("expected error when MAKOCODE_PAGE_BITS disagrees with computed capacity")
	}
}
