package transform_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/justinbass/makocode/transform"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestScaleChangesDimensions(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	out := transform.Scale(img, 20, 5)
	b := out.Bounds()
	if b.Dx() != 20 || b.Dy() != 5 {
		t.Fatalf("got %dx%d, want 20x5", b.Dx(), b.Dy())
	}
}

func TestScaleOfSolidColorStaysSolid(t *testing.T) {
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := solidImage(8, 8, want)
	out := transform.Scale(img, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := out.NRGBAAt(x, y)
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRotateZeroDegreesPreservesDimensions(t *testing.T) {
	img := solidImage(6, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	out := transform.Rotate(img, 0)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Fatal("rotate changed dimensions unexpectedly")
	}
}

func TestAddBorderNoiseIsDeterministicForFixedSeed(t *testing.T) {
	a := solidImage(20, 20, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	b := solidImage(20, 20, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	transform.AddBorderNoise(a, 3, 0.5, 42)
	transform.AddBorderNoise(b, 3, 0.5, 42)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) differs between identically-seeded runs", x, y)
			}
		}
	}
}

func TestAddBorderNoiseLeavesInteriorUntouchedAtZeroDensity(t *testing.T) {
	want := color.NRGBA{R: 5, G: 5, B: 5, A: 255}
	img := solidImage(20, 20, want)
	transform.AddBorderNoise(img, 3, 0, 1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if img.NRGBAAt(x, y) != want {
				t.Fatalf("pixel (%d,%d) changed at zero density", x, y)
			}
		}
	}
}

func TestApplyPaperTintFullStrengthMatchesTint(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	tint := color.NRGBA{R: 200, G: 150, B: 100, A: 255}
	transform.ApplyPaperTint(img, tint, 1.0)
	got := img.NRGBAAt(0, 0)
	if got.R != tint.R || got.G != tint.G || got.B != tint.B {
		t.Fatalf("got %v, want %v", got, tint)
	}
}

func TestApplyPaperTintZeroStrengthIsIdentity(t *testing.T) {
	want := color.NRGBA{R: 77, G: 88, B: 99, A: 255}
	img := solidImage(4, 4, want)
	transform.ApplyPaperTint(img, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, 0)
	got := img.NRGBAAt(0, 0)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}
