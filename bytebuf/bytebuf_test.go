package bytebuf_test

import (
	"bytes"
	"testing"

	"github.com/justinbass/makocode/bytebuf"
)

func TestAppendAndBytes(t *testing.T) {
	b := bytebuf.New()
	b.AppendString("hello ")
	b.Append([]byte("world"))
	b.PushByte('!')
	if got, want := b.Bytes(), []byte("hello world!"); !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if b.Len() != len("hello world!") {
		t.Fatalf("Len() = %d, want %d", b.Len(), len("hello world!"))
	}
}

func TestReset(t *testing.T) {
	b := bytebuf.New()
	b.AppendString("data")
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", b.Len())
	}
	b.AppendString("more")
	if got := string(b.Bytes()); got != "more" {
		t.Fatalf("Bytes() = %q, want %q", got, "more")
	}
}

func TestReserveGrowsCapacityByDoubling(t *testing.T) {
	b := bytebuf.New()
	b.Reserve(100)
	if cap(b.Bytes()) < 100 {
		t.Fatalf("capacity %d below reserved 100", cap(b.Bytes()))
	}
}

func TestNewWithCapacity(t *testing.T) {
	b := bytebuf.NewWithCapacity(50)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	if cap(b.Bytes()) < 50 {
		t.Fatalf("capacity %d below requested 50", cap(b.Bytes()))
	}
}
