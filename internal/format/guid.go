package format

import (
	"strings"

	"github.com/google/uuid"
)

// GUID is a 16-byte Windows GUID as stored on disk: the first three fields
// are little-endian, the final eight bytes are kept in storage order.
type GUID [GUIDSize]byte

// String renders the GUID in the standard
// XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX textual form (upper case).
func (g GUID) String() string {
	// Swap the little-endian fields into RFC 4122 byte order.
	var b [GUIDSize]byte
	b[0], b[1], b[2], b[3] = g[3], g[2], g[1], g[0]
	b[4], b[5] = g[5], g[4]
	b[6], b[7] = g[7], g[6]
	copy(b[8:], g[8:])
	u, _ := uuid.FromBytes(b[:])
	return strings.ToUpper(u.String())
}

// IsZero reports whether every byte of the GUID is zero.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// MarshalText implements encoding.TextMarshaler so GUID fields serialize as
// their textual form.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}
