package buf

import "testing"

func TestU16LE(t *testing.T) {
	if got := U16LE([]byte{0x34, 0x12}); got != 0x1234 {
		t.Fatalf("U16LE: got %#x", got)
	}
	if got := U16LE([]byte{0x34}); got != 0 {
		t.Fatalf("U16LE short: got %#x", got)
	}
}

func TestU32LE(t *testing.T) {
	if got := U32LE([]byte{0x78, 0x56, 0x34, 0x12}); got != 0x12345678 {
		t.Fatalf("U32LE: got %#x", got)
	}
	if got := U32LE([]byte{0x78, 0x56}); got != 0 {
		t.Fatalf("U32LE short: got %#x", got)
	}
}

func TestU64LE(t *testing.T) {
	b := []byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01}
	if got := U64LE(b); got != 0x0123456789abcdef {
		t.Fatalf("U64LE: got %#x", got)
	}
}

func TestI32LE(t *testing.T) {
	if got := I32LE([]byte{0xff, 0xff, 0xff, 0xff}); got != -1 {
		t.Fatalf("I32LE: got %d", got)
	}
}
