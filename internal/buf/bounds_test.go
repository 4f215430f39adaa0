package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if v, ok := AddOverflowSafe(1, 2); !ok || v != 3 {
		t.Fatalf("AddOverflowSafe(1,2) = %d, %v", v, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow")
	}
}

func TestSlice(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	if s, ok := Slice(b, 1, 2); !ok || len(s) != 2 || s[0] != 2 {
		t.Fatalf("Slice(1,2) = %v, %v", s, ok)
	}
	if _, ok := Slice(b, 3, 2); ok {
		t.Fatalf("expected out of bounds")
	}
	if _, ok := Slice(b, -1, 1); ok {
		t.Fatalf("expected negative offset rejection")
	}
}

func TestHas(t *testing.T) {
	b := make([]byte, 8)
	if !Has(b, 0, 8) {
		t.Fatalf("expected in bounds")
	}
	if Has(b, 8, 1) {
		t.Fatalf("expected out of bounds")
	}
}
