// Package bytebuf implements a growable byte vector; within MakoCode the
// dictionary decoder accumulates its output in it.
//
// It is a thin, explicit doubling-growth buffer rather than a bare
// append([]byte, ...) call: the teacher repo builds its frame and metadata
// bodies the same way, accumulating into a scratch buffer before handing the
// finished bytes to an io.Writer (see enc.go's use of bytes.Buffer). MakoCode
// keeps that shape but gives the buffer its own named type so that capacity
// growth is explicit and stays proportional to the bytes stored.
package bytebuf

// Buffer is an ordered sequence of bytes that grows by doubling and never
// shrinks. The zero value is an empty, ready-to-use buffer.
type Buffer struct {
	data []byte
}

// New returns an empty buffer with no pre-allocated capacity.
func New() *Buffer {
	return &Buffer{}
}

// NewWithCapacity returns an empty buffer pre-sized to hold at least n
// bytes without reallocating.
func NewWithCapacity(n int) *Buffer {
	return &Buffer{data: make([]byte, 0, n)}
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's contents. The returned slice is valid until
// the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset empties the buffer but retains its underlying storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Reserve ensures the buffer can hold at least n bytes without growing
// again, doubling the current capacity until it suffices.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.data) {
		return
	}
	grow := cap(b.data)
	if grow == 0 {
		grow = 64
	}
	for grow < n {
		grow *= 2
	}
	next := make([]byte, len(b.data), grow)
	copy(next, b.data)
	b.data = next
}

// PushByte appends a single byte, growing storage as needed.
func (b *Buffer) PushByte(v byte) {
	b.Reserve(len(b.data) + 1)
	b.data = append(b.data, v)
}

// Append appends the given bytes, growing storage as needed.
func (b *Buffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	b.Reserve(len(b.data) + len(p))
	b.data = append(b.data, p...)
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) {
	b.Append([]byte(s))
}
