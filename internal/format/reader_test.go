package format

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestReaderIntegers(t *testing.T) {
	b := make([]byte, 18)
	binary.LittleEndian.PutUint16(b[0:], 0xBEEF)
	binary.LittleEndian.PutUint32(b[2:], 0xDEADBEEF)
	binary.LittleEndian.PutUint32(b[6:], 0xFFFFFFFF) // -1 as i32
	binary.LittleEndian.PutUint64(b[10:], 0x0123456789ABCDEF)

	r := NewReader(b)
	if v, err := r.U16("a"); err != nil || v != 0xBEEF {
		t.Fatalf("U16: %v, %v", v, err)
	}
	if v, err := r.U32("b"); err != nil || v != 0xDEADBEEF {
		t.Fatalf("U32: %v, %v", v, err)
	}
	if v, err := r.I32("c"); err != nil || v != -1 {
		t.Fatalf("I32: %v, %v", v, err)
	}
	if v, err := r.U64("d"); err != nil || v != 0x0123456789ABCDEF {
		t.Fatalf("U64: %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining: %d", r.Remaining())
	}
}

func TestReaderTruncationNamesField(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.U32("entry number")
	if err == nil {
		t.Fatalf("expected truncation error")
	}
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if !strings.Contains(err.Error(), "entry number") {
		t.Fatalf("error does not name the field: %v", err)
	}
	// Failed reads must not advance the cursor.
	if r.Offset() != 0 {
		t.Fatalf("cursor advanced on failed read: %d", r.Offset())
	}
}

func TestReaderGUIDString(t *testing.T) {
	r := NewReader(ShellLinkClassID[:])
	g, err := r.GUID("class identifier")
	if err != nil {
		t.Fatalf("GUID: %v", err)
	}
	if got := g.String(); got != "00021401-0000-0000-C000-000000000046" {
		t.Fatalf("GUID string: %s", got)
	}
	if g != ShellLinkClassID {
		t.Fatalf("GUID roundtrip mismatch")
	}
}

func TestReaderUTF16LenPrefixed(t *testing.T) {
	b := []byte{0x03, 0x00, 'a', 0, 'b', 0, 'c', 0, 0xFF}
	r := NewReader(b)
	s, err := r.UTF16LenPrefixed("name")
	if err != nil {
		t.Fatalf("UTF16LenPrefixed: %v", err)
	}
	if s != "abc" {
		t.Fatalf("got %q", s)
	}
	if r.Offset() != 8 {
		t.Fatalf("offset: %d", r.Offset())
	}
}

func TestReaderUTF8FixedTrimsPadding(t *testing.T) {
	b := []byte{'h', 'o', 's', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	r := NewReader(b)
	s, err := r.UTF8Fixed("hostname", HostnameFieldSize)
	if err != nil {
		t.Fatalf("UTF8Fixed: %v", err)
	}
	if s != "host" {
		t.Fatalf("got %q", s)
	}
}

func TestReaderSkipBounds(t *testing.T) {
	r := NewReader(make([]byte, 4))
	if err := r.Skip("reserved", 4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if err := r.Skip("reserved", 1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReaderListCap(t *testing.T) {
	r := NewReader(make([]byte, 100))
	if got := r.ListCap(3, 10); got != 3 {
		t.Fatalf("plausible count clamped: %d", got)
	}
	if got := r.ListCap(0xFFFFFFFF, 10); got != 10 {
		t.Fatalf("corrupt count not clamped: %d", got)
	}
	if got := r.ListCap(5, 200); got != 0 {
		t.Fatalf("expected zero cap, got %d", got)
	}
	if err := r.Skip("body", 100); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if got := r.ListCap(1, 10); got != 0 {
		t.Fatalf("cap past end of data: %d", got)
	}
}

func TestReaderSlice(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if b, ok := r.Slice(1, 3); !ok || len(b) != 2 || b[0] != 2 {
		t.Fatalf("Slice: %v, %v", b, ok)
	}
	if _, ok := r.Slice(2, 5); ok {
		t.Fatalf("expected out of bounds")
	}
}
