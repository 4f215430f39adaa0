package jumplist

import (
	"fmt"

	"github.com/joshuapare/jumpkit/internal/format"
	"github.com/joshuapare/jumpkit/internal/shelllink"
)

// CategoryType is the discriminant preceding every category record.
type CategoryType uint32

const (
	// CategoryCustom is a user- or application-defined category with a name
	// and embedded shell links.
	CategoryCustom CategoryType = 0x00
	// CategoryKnown references a system category by id (Frequent, Recent).
	CategoryKnown CategoryType = 0x01
	// CategoryTask holds shortcut tasks; same entry layout as Custom, no name.
	CategoryTask CategoryType = 0x02
)

func (t CategoryType) String() string {
	switch t {
	case CategoryCustom:
		return "custom"
	case CategoryKnown:
		return "known"
	case CategoryTask:
		return "task"
	}
	return fmt.Sprintf("unknown(%#x)", uint32(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t CategoryType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// KnownCategoryID identifies a system category inside a Known record.
type KnownCategoryID int32

const (
	KnownCategoryFrequent KnownCategoryID = 1
	KnownCategoryRecent   KnownCategoryID = 2
	KnownCategoryNone     KnownCategoryID = -1
)

func (id KnownCategoryID) String() string {
	switch id {
	case KnownCategoryFrequent:
		return "frequent"
	case KnownCategoryRecent:
		return "recent"
	case KnownCategoryNone:
		return "none"
	}
	return fmt.Sprintf("%04X", int32(id))
}

// MarshalText implements encoding.TextMarshaler.
func (id KnownCategoryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Minimum encoded record sizes, used to bound count-driven preallocations
// against the bytes actually present.
const (
	categoryMinSize  = 8  // type discriminant + trailing marker
	linkEntryMinSize = 92 // class identifier GUID + fixed link header
)

// CustomDestinationsHeader is the fixed file header. The category count is
// the sole driver of decoding: no length field bounds the stream.
type CustomDestinationsHeader struct {
	Version       uint32 `json:"version"`
	CategoryCount uint32 `json:"category_count"`
}

// Category is one decoded category record. Which fields are populated
// depends on Type: Custom carries Name and Entries, Known carries ID, Task
// carries Entries only.
type Category struct {
	Type       CategoryType      `json:"type"`
	Name       string            `json:"name,omitempty"`
	EntryCount uint32            `json:"entry_count,omitempty"`
	ID         *KnownCategoryID  `json:"id,omitempty"`
	Entries    []*shelllink.Link `json:"entries,omitempty"`
}

// CustomDestinations is a fully decoded .customDestinations-ms file.
// Categories appear in file order.
type CustomDestinations struct {
	Header     CustomDestinationsHeader `json:"header"`
	Categories []Category               `json:"categories"`
}

// DecodeCustomDestinations strictly decodes a CustomDestinations byte
// stream: any field or embedded-entry failure aborts the whole decode.
func DecodeCustomDestinations(data []byte) (*CustomDestinations, error) {
	r := format.NewReader(data)
	version, err := r.U32("version")
	if err != nil {
		return nil, fmt.Errorf("customdestinations header: %w", err)
	}
	count, err := r.U32("category count")
	if err != nil {
		return nil, fmt.Errorf("customdestinations header: %w", err)
	}
	if err := r.Skip("reserved", 4); err != nil {
		return nil, fmt.Errorf("customdestinations header: %w", err)
	}

	cd := &CustomDestinations{
		Header:     CustomDestinationsHeader{Version: version, CategoryCount: count},
		Categories: make([]Category, 0, r.ListCap(count, categoryMinSize)),
	}
	for i := uint32(0); i < count; i++ {
		cat, err := decodeCategory(r, i)
		if err != nil {
			return nil, err
		}
		cd.Categories = append(cd.Categories, cat)
		// Every category record carries a 4-byte trailing marker.
		if err := r.Skip("category footer", 4); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
	}
	return cd, nil
}

func decodeCategory(r *format.Reader, i uint32) (Category, error) {
	disc, err := r.U32("category type")
	if err != nil {
		return Category{}, fmt.Errorf("category %d: %w", i, err)
	}
	switch CategoryType(disc) {
	case CategoryCustom:
		name, err := r.UTF16LenPrefixed("category name")
		if err != nil {
			return Category{}, fmt.Errorf("category %d: %w", i, err)
		}
		count, err := r.U32("entry count")
		if err != nil {
			return Category{}, fmt.Errorf("category %d: %w", i, err)
		}
		entries, err := decodeLinkEntries(r, i, count)
		if err != nil {
			return Category{}, err
		}
		return Category{Type: CategoryCustom, Name: name, EntryCount: count, Entries: entries}, nil

	case CategoryKnown:
		raw, err := r.I32("known category id")
		if err != nil {
			return Category{}, fmt.Errorf("category %d: %w", i, err)
		}
		id := KnownCategoryID(raw)
		return Category{Type: CategoryKnown, ID: &id}, nil

	case CategoryTask:
		count, err := r.U32("entry count")
		if err != nil {
			return Category{}, fmt.Errorf("category %d: %w", i, err)
		}
		entries, err := decodeLinkEntries(r, i, count)
		if err != nil {
			return Category{}, err
		}
		return Category{Type: CategoryTask, EntryCount: count, Entries: entries}, nil
	}
	return Category{}, fmt.Errorf("category %d: type %#x: %w", i, disc, format.ErrUnknownVariant)
}

// decodeLinkEntries reads count embedded shell links, each prefixed by a
// class identifier GUID that must name the shell link class.
func decodeLinkEntries(r *format.Reader, i, count uint32) ([]*shelllink.Link, error) {
	entries := make([]*shelllink.Link, 0, r.ListCap(count, linkEntryMinSize))
	for j := uint32(0); j < count; j++ {
		clsid, err := r.GUID("entry class identifier")
		if err != nil {
			return nil, fmt.Errorf("category %d entry %d: %w", i, j, err)
		}
		if clsid != format.ShellLinkClassID {
			return nil, fmt.Errorf("category %d entry %d: class identifier '%s': %w",
				i, j, clsid, format.ErrClassIdentifier)
		}
		l, err := shelllink.DecodeReader(r)
		if err != nil {
			return nil, fmt.Errorf("category %d entry %d: %w: %v", i, j, ErrEmbeddedLink, err)
		}
		entries = append(entries, l)
	}
	return entries, nil
}
