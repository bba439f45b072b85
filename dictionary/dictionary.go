// Package dictionary implements the 12-bit, 4096-entry LZW-style codec used
// to compress payload bytes before they are framed and packed into pixels.
//
// There is no explicit clear code and no end-of-stream code: the decoder
// stops once fewer than 12 unread bits remain. The encoder maintains an
// 8192-slot open-addressed hash index over (prefix, suffix) pairs so that
// new-entry lookups stay O(1) instead of falling back to a linear scan of
// the dictionary; the decoder needs no such index since it only ever looks
// up a code it has already stored.
package dictionary

import (
	"github.com/pkg/errors"

	"github.com/justinbass/makocode/bytebuf"
	"github.com/justinbass/makocode/internal/bitio"
)

const (
	// maxCodes is the dictionary ceiling: codes 0..255 are implicit
	// literals, codes 256..4095 are learned during compression.
	maxCodes = 4096
	// hashSize is the number of slots in the encoder's open-addressed
	// hash index, a power of two so the mask is cheap.
	hashSize = 8192
	hashMask = hashSize - 1
	// invalidCode marks an empty hash slot; it cannot collide with a
	// real 12-bit code.
	invalidCode = 0xFFFF
	// codeBits is the fixed code width written per LZW symbol.
	codeBits = 12
)

// dictTable holds the decoder's flat prefix/suffix arrays. The encoder's
// hash index reuses the same shape so both sides agree on how a code
// expands.
type dictTable struct {
	prefixes [maxCodes]uint16
	suffixes [maxCodes]byte
}

// Compress encodes input with the 12-bit LZW codec and returns the
// compressed bytes plus the exact bit length of the payload before the
// final byte-alignment padding (always a multiple of 12 for non-empty
// input). Empty input produces empty output.
func Compress(input []byte) (compressed []byte, bitLen uint64, err error) {
	if len(input) == 0 {
		return nil, 0, nil
	}

	var table dictTable
	hashTable := make([]uint16, hashSize)
	for i := range hashTable {
		hashTable[i] = invalidCode
	}

	w := bitio.NewWriter()
	dictSize := uint16(256)
	current := uint16(input[0])
	for _, symbol := range input[1:] {
		if found, ok := hashLookup(&table, hashTable, current, symbol); ok {
			current = found
			continue
		}
		if err := w.WriteBits(uint64(current), codeBits); err != nil {
			return nil, 0, errors.Wrap(err, "dictionary: emit code")
		}
		if dictSize < maxCodes {
			if !hashInsert(&table, hashTable, dictSize, current, symbol) {
				return nil, 0, errors.New("dictionary: hash index exhausted")
			}
			dictSize++
		}
		current = uint16(symbol)
	}
	if err := w.WriteBits(uint64(current), codeBits); err != nil {
		return nil, 0, errors.Wrap(err, "dictionary: emit final code")
	}

	bitLen = w.BitLen()
	if err := w.Align(); err != nil {
		return nil, 0, errors.Wrap(err, "dictionary: byte-align compressed stream")
	}
	// Bytes() aliases the writer's internal buffer; copy it out so the
	// caller owns stable storage.
	out := make([]byte, w.ByteLen())
	copy(out, w.Bytes())
	return out, bitLen, nil
}

// Decompress reverses Compress given the exact compressed bit length
// bitLen (not necessarily a multiple of 8; trailing bits beyond bitLen but
// within len(input)*8 are alignment padding and are ignored). A bitLen of
// 0 yields empty output.
func Decompress(input []byte, bitLen uint64) ([]byte, error) {
	if bitLen == 0 {
		return nil, nil
	}
	if bitLen < codeBits {
		return nil, errors.New("dictionary: fewer than 12 bits available")
	}

	var table dictTable
	r := bitio.NewReader(input, bitLen)

	dictSize := uint16(256)
	prevCode := uint16(r.ReadBits(codeBits))
	if r.Failed() {
		return nil, errors.New("dictionary: truncated bitstream")
	}
	if prevCode >= dictSize {
		return nil, errors.Errorf("dictionary: first code %d is not a literal", prevCode)
	}

	out := bytebuf.New()
	prevFirst, err := emitSequence(&table, prevCode, out)
	if err != nil {
		return nil, err
	}

	for r.Remaining() >= codeBits {
		code := uint16(r.ReadBits(codeBits))
		if r.Failed() {
			return nil, errors.New("dictionary: truncated bitstream")
		}

		var first byte
		switch {
		case code < dictSize:
			first, err = emitSequence(&table, code, out)
			if err != nil {
				return nil, err
			}
		case code == dictSize:
			// KwKwK case: the code refers to the entry about to be
			// created for (prevCode, prevFirst).
			first, err = emitSequence(&table, prevCode, out)
			if err != nil {
				return nil, err
			}
			out.PushByte(prevFirst)
			first = prevFirst
		default:
			return nil, errors.Errorf("dictionary: code %d exceeds dictionary size %d", code, dictSize)
		}

		if dictSize < maxCodes {
			table.prefixes[dictSize] = prevCode
			table.suffixes[dictSize] = first
			dictSize++
		}
		prevCode = code
		prevFirst = first
	}

	return out.Bytes(), nil
}

// emitSequence walks the prefix chain for code, pushing the decoded bytes
// onto dest in input order, and returns the first byte of the sequence.
// The walk uses a bounded scratch array (no recursion) since a dictionary
// entry's prefix chain can be at most maxCodes long.
func emitSequence(table *dictTable, code uint16, dest *bytebuf.Buffer) (first byte, err error) {
	var scratch [maxCodes]byte
	length := 0
	current := code
	for {
		if current < 256 {
			if length >= maxCodes {
				return 0, errors.New("dictionary: sequence exceeds scratch capacity")
			}
			scratch[length] = byte(current)
			length++
			break
		}
		if current >= maxCodes {
			return 0, errors.Errorf("dictionary: prefix code %d out of range", current)
		}
		if length >= maxCodes {
			return 0, errors.New("dictionary: sequence exceeds scratch capacity")
		}
		scratch[length] = table.suffixes[current]
		length++
		current = table.prefixes[current]
	}
	first = scratch[length-1]
	for i := length - 1; i >= 0; i-- {
		dest.PushByte(scratch[i])
	}
	return first, nil
}

// hashLookup finds the code stored for (prefix, suffix), if any.
func hashLookup(table *dictTable, hashTable []uint16, prefix uint16, suffix byte) (code uint16, ok bool) {
	slot := hashSlot(prefix, suffix)
	for attempt := 0; attempt < hashSize; attempt++ {
		c := hashTable[slot]
		if c == invalidCode {
			return 0, false
		}
		if table.prefixes[c] == prefix && table.suffixes[c] == suffix {
			return c, true
		}
		slot = (slot + 1) & hashMask
	}
	return 0, false
}

// hashInsert stores a new (prefix, suffix) -> code entry via linear
// probing. It reports false only if the table is completely full, which
// cannot happen under the spec's fixed 4096-entry dictionary ceiling with
// an 8192-slot table.
func hashInsert(table *dictTable, hashTable []uint16, code, prefix uint16, suffix byte) bool {
	slot := hashSlot(prefix, suffix)
	for attempt := 0; attempt < hashSize; attempt++ {
		if hashTable[slot] == invalidCode {
			hashTable[slot] = code
			table.prefixes[code] = prefix
			table.suffixes[code] = suffix
			return true
		}
		slot = (slot + 1) & hashMask
	}
	return false
}

func hashSlot(prefix uint16, suffix byte) uint32 {
	hash := (uint32(prefix) << 8) ^ uint32(suffix)
	return hash & hashMask
}
