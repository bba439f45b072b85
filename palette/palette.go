// Package palette defines the fixed color tables used to map dictionary
// codec bit groups onto pixels, and back.
//
// Three modes are recognized, each a fixed palette sized to exactly
// 2^sample-bits colors so that every possible sample value maps to a
// color and vice versa. Palette lookups require exact byte equality; the
// codec does not tolerate color drift introduced by lossy scanning or
// recompression.
package palette

import "github.com/pkg/errors"

// Mode selects one of the three fixed color palettes.
type Mode uint8

// Recognized color modes.
const (
	// ModeUnspecified is used by callers that want the color mode taken
	// from page metadata rather than forced explicitly.
	ModeUnspecified Mode = 0
	// ModeGray is the 2-color (black/white) palette, 1 sample-bit/pixel.
	ModeGray Mode = 1
	// ModeCMYW is the 4-color (white/cyan/magenta/yellow) palette,
	// 2 sample-bits/pixel.
	ModeCMYW Mode = 2
	// ModeRGBCMYWB is the 8-color (white/black/red/green/blue/cyan/
	// magenta/yellow) palette, 3 sample-bits/pixel.
	ModeRGBCMYWB Mode = 3
)

// RGB is a single palette color.
type RGB struct {
	R, G, B uint8
}

var grayPalette = []RGB{
	{0, 0, 0},       // black
	{255, 255, 255}, // white
}

var cmywPalette = []RGB{
	{255, 255, 255}, // white
	{0, 255, 255},   // cyan
	{255, 0, 255},   // magenta
	{255, 255, 0},   // yellow
}

var rgbCMYWBPalette = []RGB{
	{255, 255, 255}, // white
	{0, 0, 0},       // black
	{255, 0, 0},     // red
	{0, 255, 0},     // green
	{0, 0, 255},     // blue
	{0, 255, 255},   // cyan
	{255, 0, 255},   // magenta
	{255, 255, 0},   // yellow
}

// Table returns the fixed color table for mode, in palette-index order.
func Table(mode Mode) ([]RGB, error) {
	switch mode {
	case ModeGray:
		return grayPalette, nil
	case ModeCMYW:
		return cmywPalette, nil
	case ModeRGBCMYWB:
		return rgbCMYWBPalette, nil
	default:
		return nil, errors.Errorf("palette: unknown color mode %d", mode)
	}
}

// SampleBits returns the number of bits packed into one sample (and hence
// one pixel, since every mode carries exactly one sample per pixel) for
// mode: 1, 2, or 3.
func SampleBits(mode Mode) (int, error) {
	switch mode {
	case ModeGray:
		return 1, nil
	case ModeCMYW:
		return 2, nil
	case ModeRGBCMYWB:
		return 3, nil
	default:
		return 0, errors.Errorf("palette: unknown color mode %d", mode)
	}
}

// SampleToRGB returns the RGB triplet for sample s under mode.
func SampleToRGB(mode Mode, s int) (RGB, error) {
	table, err := Table(mode)
	if err != nil {
		return RGB{}, err
	}
	if s < 0 || s >= len(table) {
		return RGB{}, errors.Errorf("palette: sample %d out of range for mode %d (palette size %d)", s, mode, len(table))
	}
	return table[s], nil
}

// RGBToSample returns the palette index whose color exactly matches rgb
// under mode, failing if no entry matches byte-for-byte.
func RGBToSample(mode Mode, rgb RGB) (int, error) {
	table, err := Table(mode)
	if err != nil {
		return 0, err
	}
	for i, c := range table {
		if c == rgb {
			return i, nil
		}
	}
	return 0, errors.Errorf("palette: color %v is not in the mode %d palette", rgb, mode)
}

// BackgroundColor returns the conventional background (palette index 0 or
// the white entry) used by collaborators such as the footer renderer. The
// codec itself never relies on this; it is exposed for those callers.
func BackgroundColor(mode Mode) (RGB, error) {
	switch mode {
	case ModeGray:
		return grayPalette[1], nil // white
	case ModeCMYW:
		return cmywPalette[0], nil // white
	case ModeRGBCMYWB:
		return rgbCMYWBPalette[0], nil // white
	default:
		return RGB{}, errors.Errorf("palette: unknown color mode %d", mode)
	}
}

// ForegroundColor returns the conventional high-contrast ink color used to
// render footer text, one palette entry away from BackgroundColor.
func ForegroundColor(mode Mode) (RGB, error) {
	switch mode {
	case ModeGray:
		return grayPalette[0], nil // black
	case ModeCMYW:
		return cmywPalette[1], nil // cyan
	case ModeRGBCMYWB:
		return rgbCMYWBPalette[1], nil // black
	default:
		return RGB{}, errors.Errorf("palette: unknown color mode %d", mode)
	}
}
