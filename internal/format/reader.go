package format

import (
	"fmt"
	"strings"

	"github.com/joshuapare/jumpkit/internal/buf"
)

// Reader is a cursor over an in-memory byte slice. Every read is named after
// the field it decodes so failures identify exactly which structure member
// could not be read. A failed read never advances the cursor, so an enclosing
// record decoder aborts at a well-defined position.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Slice returns a view of the underlying data for [start:end), independent of
// the cursor. Used for length-delimited blocks whose internal offsets are
// relative to the block start.
func (r *Reader) Slice(start, end int) ([]byte, bool) {
	if start < 0 || end < start || end > len(r.data) {
		return nil, false
	}
	return r.data[start:end], true
}

func (r *Reader) fail(field string, need int) error {
	return fmt.Errorf("%s: %w (need %d bytes at offset %d, have %d)",
		field, ErrTruncated, need, r.off, r.Remaining())
}

// ListCap bounds a count-driven preallocation by the bytes remaining: the
// stream cannot hold more than Remaining()/elemSize records of at least
// elemSize bytes, so a corrupt count never drives an oversized allocation.
func (r *Reader) ListCap(count uint32, elemSize int) int {
	max := r.Remaining() / elemSize
	if uint64(count) > uint64(max) {
		return max
	}
	return int(count)
}

// Bytes consumes n raw bytes. The returned slice aliases the underlying data.
func (r *Reader) Bytes(field string, n int) ([]byte, error) {
	b, ok := buf.Slice(r.data, r.off, n)
	if !ok {
		return nil, r.fail(field, n)
	}
	r.off += n
	return b, nil
}

// Skip advances the cursor past n reserved or unknown bytes.
func (r *Reader) Skip(field string, n int) error {
	if !buf.Has(r.data, r.off, n) {
		return r.fail(field, n)
	}
	r.off += n
	return nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16(field string) (uint16, error) {
	b, err := r.Bytes(field, 2)
	if err != nil {
		return 0, err
	}
	return buf.U16LE(b), nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32(field string) (uint32, error) {
	b, err := r.Bytes(field, 4)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(b), nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32(field string) (int32, error) {
	b, err := r.Bytes(field, 4)
	if err != nil {
		return 0, err
	}
	return buf.I32LE(b), nil
}

// U64 reads a little-endian uint64.
func (r *Reader) U64(field string) (uint64, error) {
	b, err := r.Bytes(field, 8)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(b), nil
}

// GUID reads a 16-byte mixed-endian GUID.
func (r *Reader) GUID(field string) (GUID, error) {
	b, err := r.Bytes(field, GUIDSize)
	if err != nil {
		return GUID{}, err
	}
	var g GUID
	copy(g[:], b)
	return g, nil
}

// UTF16 reads units UTF-16 code units (2*units bytes) and decodes them.
func (r *Reader) UTF16(field string, units int) (string, error) {
	b, err := r.Bytes(field, units*2)
	if err != nil {
		return "", err
	}
	return DecodeUTF16LE(b), nil
}

// UTF16LenPrefixed reads a u16 code-unit count followed by the string itself.
func (r *Reader) UTF16LenPrefixed(field string) (string, error) {
	units, err := r.U16(field + " length")
	if err != nil {
		return "", err
	}
	return r.UTF16(field, int(units))
}

// UTF8Fixed reads a fixed-width UTF-8 field of n bytes, trimming trailing
// NUL padding.
func (r *Reader) UTF8Fixed(field string, n int) (string, error) {
	b, err := r.Bytes(field, n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}
