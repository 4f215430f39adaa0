package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a field.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnknownVariant indicates a discriminant outside the closed set of
	// expected values.
	ErrUnknownVariant = errors.New("format: unknown variant")
	// ErrClassIdentifier indicates a class identifier GUID that does not match
	// the expected well-known value.
	ErrClassIdentifier = errors.New("format: unexpected class identifier")
)
