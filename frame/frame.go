// Package frame builds and parses MakoCode frames: the 64-bit payload
// length header, the compressed payload bits, byte alignment, and (for the
// 8-color palette only) the per-byte rotation that whitens the frame's bit
// distribution before it is packed into pixels.
//
// Frame format (pseudo code):
//
//	type FRAME struct {
//	   length_hdr   uint64          // bit length of payload_bits, LSB-first
//	   payload_bits []bit           // compressed dictionary codec output
//	   _            uint0 to uint7  // zero-padding to byte alignment
//	}
//
// When the active color mode is 3, every byte of the byte-aligned frame
// above (including the header bytes) is further rotated: byte i is
// rotate_left'd by (i mod 3)+1 bits. This whitening step runs on the full
// frame, not on the compressed payload alone, and must be undone before the
// header is read back out on decode.
package frame

import (
	"github.com/pkg/errors"

	"github.com/justinbass/makocode/internal/bitio"
	"github.com/justinbass/makocode/palette"
)

// headerBits is the fixed width of the payload-bit-length header.
const headerBits = 64

// Build assembles a frame from compressed payload bytes and the exact bit
// length (bitLen) the compressor reported for that payload prior to its own
// byte-alignment padding. mode selects whether mode-3 rotation whitening is
// applied; modes 1 and 2 pass the byte-aligned frame through unchanged.
func Build(compressed []byte, bitLen uint64, mode palette.Mode) ([]byte, error) {
	w := bitio.NewWriter()
	if err := w.WriteBits(bitLen, headerBits); err != nil {
		return nil, errors.Wrap(err, "frame: write length header")
	}
	for _, b := range compressed {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return nil, errors.Wrap(err, "frame: write payload byte")
		}
	}
	if err := w.Align(); err != nil {
		return nil, errors.Wrap(err, "frame: byte-align frame")
	}

	out := make([]byte, w.ByteLen())
	copy(out, w.Bytes())

	if mode == palette.ModeRGBCMYWB {
		for i := range out {
			out[i] = rotateLeft8(out[i], byte(i%3)+1)
		}
	}
	return out, nil
}

// Parse inverts Build: given a byte-aligned frame (already rotated, if
// mode-3), it undoes the rotation, reads the 64-bit length header, and
// returns the compressed payload bytes and the declared payload bit count.
//
// If declaredBits is non-nil, it is checked against the frame's own length
// header; a mismatch is a frame-integrity error (the PPM metadata comment
// and the frame header must agree).
func Parse(frameBytes []byte, mode palette.Mode, declaredBits *uint64) (compressed []byte, bitLen uint64, err error) {
	if len(frameBytes)*8 < headerBits {
		return nil, 0, errors.New("frame: fewer than 64 bits available for length header")
	}

	data := make([]byte, len(frameBytes))
	copy(data, frameBytes)
	if mode == palette.ModeRGBCMYWB {
		for i := range data {
			data[i] = rotateRight8(data[i], byte(i%3)+1)
		}
	}

	r := bitio.NewReader(data, uint64(len(data))*8)
	lc := r.ReadBits(headerBits)
	if r.Failed() {
		return nil, 0, errors.New("frame: failed to read length header")
	}
	if declaredBits != nil && *declaredBits != lc {
		return nil, 0, errors.Errorf("frame: metadata bit length %d disagrees with frame header %d", *declaredBits, lc)
	}
	if lc > r.Remaining() {
		return nil, 0, errors.Errorf("frame: declared payload bit length %d exceeds %d remaining frame bits", lc, r.Remaining())
	}

	w := bitio.NewWriter()
	for i := uint64(0); i < lc; i++ {
		if err := w.WriteBit(r.ReadBit()); err != nil {
			return nil, 0, errors.Wrap(err, "frame: copy payload bits")
		}
	}
	if r.Failed() {
		return nil, 0, errors.New("frame: underflow while copying payload bits")
	}
	if err := w.Align(); err != nil {
		return nil, 0, errors.Wrap(err, "frame: byte-align extracted payload")
	}

	out := make([]byte, w.ByteLen())
	copy(out, w.Bytes())
	return out, lc, nil
}

// rotateLeft8 rotates an 8-bit value left by amount bits, amount taken mod 8.
func rotateLeft8(v, amount byte) byte {
	amount &= 7
	if amount == 0 {
		return v
	}
	return (v << amount) | (v >> (8 - amount))
}

// rotateRight8 rotates an 8-bit value right by amount bits, amount taken mod 8.
func rotateRight8(v, amount byte) byte {
	amount &= 7
	if amount == 0 {
		return v
	}
	return (v >> amount) | (v << (8 - amount))
}
