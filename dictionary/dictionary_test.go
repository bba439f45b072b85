package dictionary_test

import (
	"bytes"
	"testing"

	"github.com/justinbass/makocode/dictionary"
)

func TestRoundTrip(t *testing.T) {
	golden := [][]byte{
		nil,
		{},
		{0x41},
		{0x00, 0x00, 0x00, 0x00},
		bytes.Repeat([]byte{0x00}, 1024),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("abcabcabcabc"), 50),
	}
	for _, want := range golden {
		compressed, bitLen, err := dictionary.Compress(want)
		if err != nil {
			t.Fatalf("Compress(%q): %v", want, err)
		}
		got, err := dictionary.Decompress(compressed, bitLen)
		if err != nil {
			t.Fatalf("Decompress after Compress(%q): %v", want, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("round-trip mismatch: got %q, want %q", got, want)
		}
	}
}

func TestEmptyInputProducesEmptyOutput(t *testing.T) {
	compressed, bitLen, err := dictionary.Compress(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) != 0 || bitLen != 0 {
		t.Fatalf("Compress(nil) = (%v, %d), want (nil, 0)", compressed, bitLen)
	}
	got, err := dictionary.Decompress(compressed, bitLen)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("Decompress(nil, 0) = %v, want empty", got)
	}
}

func TestCompressedBitLenMultipleOf12(t *testing.T) {
	payload := []byte("a payload long enough to exercise the dictionary a fair bit, abcabcabcabc")
	_, bitLen, err := dictionary.Compress(payload)
	if err != nil {
		t.Fatal(err)
	}
	if bitLen%12 != 0 {
		t.Fatalf("bit length %d not a multiple of 12", bitLen)
	}
}

func TestDecompressRejectsOutOfRangeCode(t *testing.T) {
	// 12-bit code 0xAA0 (2720) followed by padding: no such dictionary entry
	// has ever been built, so this must fail rather than panic.
	_, err := dictionary.Decompress([]byte{0xA0, 0xFA, 0x00}, 12)
	if err == nil {
		t.Fatal("expected error for out-of-range code")
	}
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	_, err := dictionary.Decompress([]byte{0x01}, 4)
	if err == nil {
		t.Fatal("expected error for fewer than 12 declared bits")
	}
}

func TestSingleByteLiteral(t *testing.T) {
	compressed, bitLen, err := dictionary.Compress([]byte{0x41})
	if err != nil {
		t.Fatal(err)
	}
	if bitLen != 12 {
		t.Fatalf("bitLen = %d, want 12", bitLen)
	}
	got, err := dictionary.Decompress(compressed, bitLen)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x41}) {
		t.Fatalf("got %v, want [0x41]", got)
	}
}
