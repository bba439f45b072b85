package frame_test

import (
	"bytes"
	"testing"

	"github.com/justinbass/makocode/dictionary"
	"github.com/justinbass/makocode/frame"
	"github.com/justinbass/makocode/palette"
)

func TestBuildParseRoundTrip(t *testing.T) {
	for _, mode := range []palette.Mode{palette.ModeGray, palette.ModeCMYW, palette.ModeRGBCMYWB} {
		payload := []byte("roundtrip through the framing layer")
		compressed, bitLen, err := dictionary.Compress(payload)
		if err != nil {
			t.Fatal(err)
		}
		frameBytes, err := frame.Build(compressed, bitLen, mode)
		if err != nil {
			t.Fatalf("mode %d: Build: %v", mode, err)
		}
		gotCompressed, gotBitLen, err := frame.Parse(frameBytes, mode, nil)
		if err != nil {
			t.Fatalf("mode %d: Parse: %v", mode, err)
		}
		if gotBitLen != bitLen {
			t.Fatalf("mode %d: bit length %d, want %d", mode, gotBitLen, bitLen)
		}
		if !bytes.Equal(gotCompressed, compressed) {
			t.Fatalf("mode %d: compressed bytes mismatch", mode)
		}
	}
}

func TestHeaderEqualsCompressorBitLength(t *testing.T) {
	payload := []byte{0x41}
	compressed, bitLen, err := dictionary.Compress(payload)
	if err != nil {
		t.Fatal(err)
	}
	if want := (bitLen + 7) / 8; uint64(len(compressed)) != want {
		t.Fatalf("len(compressed) = %d, want ceil(bitLen/8) = %d", len(compressed), want)
	}
	frameBytes, err := frame.Build(compressed, bitLen, palette.ModeGray)
	if err != nil {
		t.Fatal(err)
	}
	_, gotBitLen, err := frame.Parse(frameBytes, palette.ModeGray, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gotBitLen != bitLen {
		t.Fatalf("header round trip: got %d, want %d", gotBitLen, bitLen)
	}
}

func TestParseRejectsMetadataDisagreement(t *testing.T) {
	compressed, bitLen, err := dictionary.Compress([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	frameBytes, err := frame.Build(compressed, bitLen, palette.ModeGray)
	if err != nil {
		t.Fatal(err)
	}
	wrong := bitLen + 8
	if _, _, err := frame.Parse(frameBytes, palette.ModeGray, &wrong); err == nil {
		t.Fatal("expected error on metadata/header disagreement")
	}
}

func TestParseRejectsUnderLengthFrame(t *testing.T) {
	if _, _, err := frame.Parse([]byte{0x00, 0x01, 0x02}, palette.ModeGray, nil); err == nil {
		t.Fatal("expected error for frame shorter than the 64-bit header")
	}
}

func TestParseRejectsLengthExceedingFrame(t *testing.T) {
	w := make([]byte, 8+1) // 64-bit header claiming more payload bits than exist
	// length header = 64 (way more than the 8 bits of payload present)
	w[0] = 64
	if _, _, err := frame.Parse(w, palette.ModeGray, nil); err == nil {
		t.Fatal("expected error when declared length exceeds remaining frame bits")
	}
}

func TestMode3RotationIsInvolution(t *testing.T) {
	compressed, bitLen, err := dictionary.Compress([]byte("whitened by rotation"))
	if err != nil {
		t.Fatal(err)
	}
	rotated, err := frame.Build(compressed, bitLen, palette.ModeRGBCMYWB)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := frame.Build(compressed, bitLen, palette.ModeGray)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(rotated, plain) {
		t.Fatal("expected mode-3 rotation to change the byte pattern")
	}
	gotCompressed, gotBitLen, err := frame.Parse(rotated, palette.ModeRGBCMYWB, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gotBitLen != bitLen || !bytes.Equal(gotCompressed, compressed) {
		t.Fatal("mode-3 rotation did not invert cleanly")
	}
}
