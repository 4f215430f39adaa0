// Package shelllink decodes MS-SHLLINK shell link structures as they appear
// embedded inside jump list containers. The decoder is deliberately opaque to
// the container formats: it consumes bytes, returns a structured Link or an
// error, and exposes a flat normalized view for reporting.
package shelllink

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshuapare/jumpkit/internal/format"
)

// Link flag bits from the shell link header.
const (
	FlagHasLinkTargetIDList uint32 = 1 << iota
	FlagHasLinkInfo
	FlagHasName
	FlagHasRelativePath
	FlagHasWorkingDir
	FlagHasArguments
	FlagHasIconLocation
	FlagIsUnicode
	FlagForceNoLinkInfo
)

// headerSize is the fixed size of the shell link header.
const headerSize = 0x4C

// ErrNotShellLink indicates the buffer does not begin with a shell link header.
var ErrNotShellLink = errors.New("shelllink: not a shell link structure")

// Header is the fixed 76-byte shell link header.
type Header struct {
	Flags          uint32    `json:"flags"`
	FileAttributes uint32    `json:"file_attributes"`
	CreationTime   time.Time `json:"ctime"`
	AccessTime     time.Time `json:"atime"`
	WriteTime      time.Time `json:"mtime"`
	FileSize       uint32    `json:"target_size"`
	IconIndex      int32     `json:"icon_index"`
	ShowCommand    uint32    `json:"show_command"`
	HotKey         uint16    `json:"hot_key"`
}

// Has reports whether the given link flag is set.
func (h Header) Has(flag uint32) bool {
	return h.Flags&flag != 0
}

// StringData holds the optional string section of a link. Absence is tracked
// through the header flags, not through empty values.
type StringData struct {
	Name         string `json:"name_string,omitempty"`
	RelativePath string `json:"relative_path,omitempty"`
	WorkingDir   string `json:"working_dir,omitempty"`
	Arguments    string `json:"command_line_arguments,omitempty"`
	IconLocation string `json:"icon_location,omitempty"`
}

// Link is a decoded shell link record.
type Link struct {
	Header          Header           `json:"header"`
	Info            *LinkInfo        `json:"link_info,omitempty"`
	StringData      StringData       `json:"string_data"`
	Environment     *Environment     `json:"environment,omitempty"`
	Darwin          *Darwin          `json:"darwin,omitempty"`
	IconEnvironment *IconEnvironment `json:"icon_environment,omitempty"`
	Shim            *Shim            `json:"shim,omitempty"`
	Tracker         *Tracker         `json:"tracker,omitempty"`
}

// Decode parses a complete shell link from a byte buffer.
func Decode(data []byte) (*Link, error) {
	return DecodeReader(format.NewReader(data))
}

// DecodeReader parses a shell link from r, leaving the cursor at the first
// byte after the link's terminal block. Container decoders rely on that to
// read records that follow the embedded link in the same stream.
func DecodeReader(r *format.Reader) (*Link, error) {
	size, err := r.U32("header size")
	if err != nil {
		return nil, err
	}
	if size != headerSize {
		return nil, fmt.Errorf("%w: header size %#x", ErrNotShellLink, size)
	}
	clsid, err := r.GUID("class identifier")
	if err != nil {
		return nil, err
	}
	if clsid != format.ShellLinkClassID {
		return nil, fmt.Errorf("class identifier '%s': %w", clsid, format.ErrClassIdentifier)
	}

	l := &Link{}
	if err := decodeHeaderFields(r, &l.Header); err != nil {
		return nil, err
	}

	if l.Header.Has(FlagHasLinkTargetIDList) {
		idListSize, err := r.U16("id list size")
		if err != nil {
			return nil, err
		}
		// Shell item semantics are out of scope; the list is skipped whole.
		if err := r.Skip("id list", int(idListSize)); err != nil {
			return nil, err
		}
	}

	if l.Header.Has(FlagHasLinkInfo) && !l.Header.Has(FlagForceNoLinkInfo) {
		info, err := decodeLinkInfoBlock(r)
		if err != nil {
			return nil, err
		}
		l.Info = info
	}

	if err := decodeStringData(r, l); err != nil {
		return nil, err
	}
	if err := decodeExtraData(r, l); err != nil {
		return nil, err
	}
	return l, nil
}

func decodeHeaderFields(r *format.Reader, h *Header) error {
	var err error
	if h.Flags, err = r.U32("link flags"); err != nil {
		return err
	}
	if h.FileAttributes, err = r.U32("file attributes"); err != nil {
		return err
	}
	ctime, err := r.U64("creation time")
	if err != nil {
		return err
	}
	atime, err := r.U64("access time")
	if err != nil {
		return err
	}
	wtime, err := r.U64("write time")
	if err != nil {
		return err
	}
	h.CreationTime = format.FiletimeToTime(ctime)
	h.AccessTime = format.FiletimeToTime(atime)
	h.WriteTime = format.FiletimeToTime(wtime)
	if h.FileSize, err = r.U32("file size"); err != nil {
		return err
	}
	if h.IconIndex, err = r.I32("icon index"); err != nil {
		return err
	}
	if h.ShowCommand, err = r.U32("show command"); err != nil {
		return err
	}
	if h.HotKey, err = r.U16("hot key"); err != nil {
		return err
	}
	return r.Skip("header reserved", 10)
}

func decodeStringData(r *format.Reader, l *Link) error {
	fields := []struct {
		flag uint32
		name string
		dst  *string
	}{
		{FlagHasName, "name string", &l.StringData.Name},
		{FlagHasRelativePath, "relative path", &l.StringData.RelativePath},
		{FlagHasWorkingDir, "working dir", &l.StringData.WorkingDir},
		{FlagHasArguments, "command line arguments", &l.StringData.Arguments},
		{FlagHasIconLocation, "icon location", &l.StringData.IconLocation},
	}
	unicode := l.Header.Has(FlagIsUnicode)
	for _, f := range fields {
		if !l.Header.Has(f.flag) {
			continue
		}
		count, err := r.U16(f.name + " length")
		if err != nil {
			return err
		}
		if unicode {
			s, err := r.UTF16(f.name, int(count))
			if err != nil {
				return err
			}
			*f.dst = s
		} else {
			b, err := r.Bytes(f.name, int(count))
			if err != nil {
				return err
			}
			*f.dst = decodeANSI(b)
		}
	}
	return nil
}

// decodeLinkInfoBlock consumes the size-prefixed LinkInfo structure and
// parses it from a window over the whole block, since its internal offsets
// are relative to the block start.
func decodeLinkInfoBlock(r *format.Reader) (*LinkInfo, error) {
	start := r.Offset()
	size, err := r.U32("link info size")
	if err != nil {
		return nil, err
	}
	if size < linkInfoMinSize {
		return nil, fmt.Errorf("link info size %d: %w", size, format.ErrTruncated)
	}
	if err := r.Skip("link info body", int(size)-4); err != nil {
		return nil, err
	}
	block, ok := r.Slice(start, start+int(size))
	if !ok {
		return nil, fmt.Errorf("link info block: %w", format.ErrTruncated)
	}
	return parseLinkInfo(block)
}
