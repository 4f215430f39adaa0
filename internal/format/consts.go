// Package format houses low-level decoders for the binary jump list file
// formats. The goal is to keep the parsing focused, allocation-free where
// possible, and independent from the public API so higher-level packages can
// orchestrate the data in a more ergonomic form.
package format

var (
	// ShellLinkClassID is the class identifier that prefixes every embedded
	// shell link structure, stored in mixed-endian GUID layout. Textual form:
	//   00021401-0000-0000-C000-000000000046
	ShellLinkClassID = GUID{
		0x01, 0x14, 0x02, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
	}
)

const (
	// GUIDSize is the on-disk size of a GUID field.
	GUIDSize = 16

	// HostnameFieldSize is the fixed width of the NUL-padded hostname field
	// inside a DestList entry.
	HostnameFieldSize = 16

	// NotPinnedSentinel marks a DestList entry that is not pinned. Any other
	// value in the field means the entry is pinned; the value itself carries
	// no documented ordering.
	NotPinnedSentinel = 0xFFFFFFFF
)
