package format

import "strings"

// DecodeUTF16LE decodes UTF-16LE bytes to a UTF-8 string. Uses an ASCII fast
// path since the vast majority of jump list paths and names are plain ASCII.
func DecodeUTF16LE(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	// Fast path: in UTF-16LE, ASCII chars are [byte, 0x00].
	allASCII := len(data)%2 == 0
	if allASCII {
		for i := 0; i < len(data); i += 2 {
			if data[i+1] != 0 || data[i] >= 0x80 {
				allASCII = false
				break
			}
		}
	}
	if allASCII {
		var b strings.Builder
		b.Grow(len(data) / 2)
		for i := 0; i < len(data); i += 2 {
			b.WriteByte(data[i])
		}
		return b.String()
	}

	// Slow path: decode UTF-16 properly, handling surrogate pairs.
	var b strings.Builder
	b.Grow(len(data))
	for i := 0; i+1 < len(data); i += 2 {
		r := rune(data[i]) | rune(data[i+1])<<8
		if r >= 0xD800 && r <= 0xDBFF && i+3 < len(data) {
			r2 := rune(data[i+2]) | rune(data[i+3])<<8
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				r = 0x10000 + ((r-0xD800)<<10 | (r2 - 0xDC00))
				i += 2 // consume the low surrogate
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeUTF16LENulTerminated decodes up to the first NUL code unit.
func DecodeUTF16LENulTerminated(data []byte) string {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return DecodeUTF16LE(data[:i])
		}
	}
	return DecodeUTF16LE(data)
}
