// Package transform applies pixel-level perturbations to a decoded PPM
// image: scaling, rotation, border noise, and a paper-tint color wash.
// These exist to exercise scanner robustness in test tooling; no command in
// cmd/makocode uses them, encode and decode never import this package, and
// recovering from a rotation or scale applied here is explicitly out of scope.
package transform

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Scale resizes img to width x height using a bilinear filter.
func Scale(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Rotate rotates img by degrees (clockwise) about its center, sampling the
// source with bilinear interpolation and filling uncovered corners white.
func Rotate(img image.Image, degrees float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	cx, cy := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Map destination pixel back to source space via the inverse
			// rotation, matching rotate_image's sampling direction.
			dx := float64(x) - cx
			dy := float64(y) - cy
			sx := dx*cos+dy*sin + cx
			sy := -dx*sin+dy*cos + cy
			dst.Set(x, y, bilinearSample(img, sx, sy))
		}
	}
	return dst
}

func bilinearSample(img image.Image, fx, fy float64) color.NRGBA {
	b := img.Bounds()
	if fx < float64(b.Min.X) || fx > float64(b.Max.X-1) || fy < float64(b.Min.Y) || fy > float64(b.Max.Y-1) {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)
	x1, y1 := x0+1, y0+1
	if x1 >= b.Max.X {
		x1 = x0
	}
	if y1 >= b.Max.Y {
		y1 = y0
	}

	at := func(x, y int) (float64, float64, float64) {
		r, g, bch, _ := img.At(x, y).RGBA()
		return float64(r >> 8), float64(g >> 8), float64(bch >> 8)
	}
	r00, g00, b00 := at(x0, y0)
	r10, g10, b10 := at(x1, y0)
	r01, g01, b01 := at(x0, y1)
	r11, g11, b11 := at(x1, y1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	r := lerp(lerp(r00, r10, tx), lerp(r01, r11, tx), ty)
	g := lerp(lerp(g00, g10, tx), lerp(g01, g11, tx), ty)
	bl := lerp(lerp(b00, b10, tx), lerp(b01, b11, tx), ty)
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(bl), A: 255}
}

// xorshift32 is a small deterministic PRNG, seeded explicitly so noise and
// tint runs are reproducible across a test suite.
type xorshift32 struct {
	state uint32
}

func newXorshift32(seed uint32) *xorshift32 {
	if seed == 0 {
		seed = 1
	}
	return &xorshift32{state: seed}
}

func (x *xorshift32) next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

func (x *xorshift32) unit() float64 {
	return float64(x.next()) / float64(^uint32(0))
}

func (x *xorshift32) byteVal() uint8 {
	return uint8(x.next() & 0xFF)
}

// AddBorderNoise randomizes pixels within thickness pixels of img's edges,
// each pixel independently replaced with a random color with probability
// density.
func AddBorderNoise(img *image.NRGBA, thickness int, density float64, seed uint32) {
	b := img.Bounds()
	rng := newXorshift32(seed)
	onBorder := func(x, y int) bool {
		return x < b.Min.X+thickness || x >= b.Max.X-thickness ||
			y < b.Min.Y+thickness || y >= b.Max.Y-thickness
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !onBorder(x, y) {
				continue
			}
			if rng.unit() >= density {
				continue
			}
			img.Set(x, y, color.NRGBA{R: rng.byteVal(), G: rng.byteVal(), B: rng.byteVal(), A: 255})
		}
	}
}

// ApplyPaperTint blends tint into every pixel of img by strength (0..1),
// simulating a scanned paper color cast.
func ApplyPaperTint(img *image.NRGBA, tint color.NRGBA, strength float64) {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}
	b := img.Bounds()
	blend := func(c, t uint8) uint8 {
		return uint8(float64(c)*(1-strength) + float64(t)*strength)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: blend(c.R, tint.R),
				G: blend(c.G, tint.G),
				B: blend(c.B, tint.B),
				A: 255,
			})
		}
	}
}
