package format

import "testing"

func TestDecodeUTF16LEASCII(t *testing.T) {
	b := []byte{'C', 0, ':', 0, '\\', 0, 'a', 0}
	if got := DecodeUTF16LE(b); got != `C:\a` {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeUTF16LENonASCII(t *testing.T) {
	// "ü" is U+00FC, encoded as FC 00.
	b := []byte{0xFC, 0x00}
	if got := DecodeUTF16LE(b); got != "\u00fc" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeUTF16LESurrogatePair(t *testing.T) {
	// U+1F600 is D83D DE00 in UTF-16.
	b := []byte{0x3D, 0xD8, 0x00, 0xDE}
	if got := DecodeUTF16LE(b); got != "\U0001F600" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeUTF16LEEmpty(t *testing.T) {
	if got := DecodeUTF16LE(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeUTF16LENulTerminated(t *testing.T) {
	b := []byte{'a', 0, 'b', 0, 0, 0, 'x', 0}
	if got := DecodeUTF16LENulTerminated(b); got != "ab" {
		t.Fatalf("got %q", got)
	}
	// No terminator: decode everything.
	if got := DecodeUTF16LENulTerminated([]byte{'a', 0}); got != "a" {
		t.Fatalf("got %q", got)
	}
}
