package jumplist

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/joshuapare/jumpkit/internal/format"
	"github.com/joshuapare/jumpkit/internal/shelllink"
)

// DestListHeader is the fixed header of the DestList index stream. Version
// gates the byte layout of every entry that follows.
type DestListHeader struct {
	Version          uint32 `json:"version"`
	EntryCount       uint32 `json:"number_of_entries"`
	PinnedEntryCount uint32 `json:"number_of_pinned_entries"`
}

// DestListEntry is one destination record from the DestList stream. The
// entry number correlates, rendered as lowercase hex, to the name of the
// compound-container stream holding the matching shell link.
type DestListEntry struct {
	VolumeDroid      format.GUID     `json:"volume_droid"`
	FileDroid        format.GUID     `json:"file_droid"`
	VolumeBirthDroid format.GUID     `json:"volume_birth_droid"`
	FileBirthDroid   format.GUID     `json:"file_birth_droid"`
	Hostname         string          `json:"hostname"`
	EntryNumber      uint32          `json:"entry_number"`
	ModifiedTime     time.Time       `json:"mtime"`
	Pinned           bool            `json:"pinned"`
	Path             string          `json:"path"`
	Link             *shelllink.Link `json:"lnk,omitempty"`
}

// DestList is a decoded DestList stream with correlated shell links,
// ordered most-recently-used first.
type DestList struct {
	Header  DestListHeader   `json:"header"`
	Entries []*DestListEntry `json:"entries"`
}

// Empty reports whether the artifact carried no indexed entries. An empty
// jump list is a valid result, not an error; callers may surface a warning.
func (d *DestList) Empty() bool {
	return d.Header.Version == 0 && len(d.Entries) == 0
}

// Stream is one named compound-container stream, borrowed read-only by the
// correlation pass.
type Stream interface {
	io.Reader
	Name() string
	Size() int64
}

// destListLayout centralizes the version-dependent reserved regions of an
// entry so the decoder reads one layout instead of branching per field.
type destListLayout struct {
	preSkip      int // before the droid GUIDs
	midSkip      int // between entry number and mtime
	postPinSkip  int // after the pin field, versions > 1 only
	postPathSkip int // after the path, versions > 1 only
}

func layoutForVersion(v uint32) destListLayout {
	l := destListLayout{preSkip: 8, midSkip: 8}
	if v > 1 {
		l.postPinSkip = 16
		l.postPathSkip = 4
	}
	return l
}

// DecodeDestList decodes a DestList stream and correlates each entry to its
// embedded shell link stream. Decoding is lenient at entry granularity: a
// malformed entry ends the loop and everything decoded so far is returned,
// since the OS routinely truncates DestList streams without a trailing
// marker. A nil or empty stream yields a valid zero-valued result.
func DecodeDestList(data []byte, streams []Stream) (*DestList, error) {
	if len(data) == 0 {
		return &DestList{Entries: []*DestListEntry{}}, nil
	}
	r := format.NewReader(data)
	header, err := decodeDestListHeader(r)
	if err != nil {
		return nil, err
	}
	d := &DestList{Header: header, Entries: []*DestListEntry{}}
	for {
		entry, err := decodeDestListEntry(r, header.Version)
		if err != nil {
			break
		}
		attachLink(entry, streams)
		d.Entries = append(d.Entries, entry)
	}
	// Higher entry numbers were assigned later; descending order reconstructs
	// most-recently-used first. Stable sort keeps insertion order on ties.
	sort.SliceStable(d.Entries, func(i, j int) bool {
		return d.Entries[i].EntryNumber > d.Entries[j].EntryNumber
	})
	return d, nil
}

func decodeDestListHeader(r *format.Reader) (DestListHeader, error) {
	var h DestListHeader
	var err error
	if h.Version, err = r.U32("version"); err != nil {
		return h, fmt.Errorf("destlist header: %w", err)
	}
	if h.EntryCount, err = r.U32("number of entries"); err != nil {
		return h, fmt.Errorf("destlist header: %w", err)
	}
	if h.PinnedEntryCount, err = r.U32("number of pinned entries"); err != nil {
		return h, fmt.Errorf("destlist header: %w", err)
	}
	if err := r.Skip("header reserved", 20); err != nil {
		return h, fmt.Errorf("destlist header: %w", err)
	}
	return h, nil
}

func decodeDestListEntry(r *format.Reader, version uint32) (*DestListEntry, error) {
	layout := layoutForVersion(version)
	wrap := func(err error) error {
		return fmt.Errorf("destlist entry: %w", err)
	}

	if err := r.Skip("entry reserved", layout.preSkip); err != nil {
		return nil, wrap(err)
	}
	e := &DestListEntry{}
	var err error
	if e.VolumeDroid, err = r.GUID("volume droid"); err != nil {
		return nil, wrap(err)
	}
	if e.FileDroid, err = r.GUID("file droid"); err != nil {
		return nil, wrap(err)
	}
	if e.VolumeBirthDroid, err = r.GUID("volume birth droid"); err != nil {
		return nil, wrap(err)
	}
	if e.FileBirthDroid, err = r.GUID("file birth droid"); err != nil {
		return nil, wrap(err)
	}
	if e.Hostname, err = r.UTF8Fixed("hostname", format.HostnameFieldSize); err != nil {
		return nil, wrap(err)
	}
	if e.EntryNumber, err = r.U32("entry number"); err != nil {
		return nil, wrap(err)
	}
	if err := r.Skip("entry reserved", layout.midSkip); err != nil {
		return nil, wrap(err)
	}
	mtime, err := r.U64("mtime")
	if err != nil {
		return nil, wrap(err)
	}
	e.ModifiedTime = format.FiletimeToTime(mtime)
	pin, err := r.U32("pin status")
	if err != nil {
		return nil, wrap(err)
	}
	// Non-sentinel values may carry an undocumented ordering; only the
	// boolean meaning is decoded.
	e.Pinned = pin != format.NotPinnedSentinel
	if layout.postPinSkip > 0 {
		if err := r.Skip("entry reserved", layout.postPinSkip); err != nil {
			return nil, wrap(err)
		}
	}
	if e.Path, err = r.UTF16LenPrefixed("path"); err != nil {
		return nil, wrap(err)
	}
	if layout.postPathSkip > 0 {
		if err := r.Skip("entry reserved", layout.postPathSkip); err != nil {
			return nil, wrap(err)
		}
	}
	return e, nil
}

// attachLink resolves the entry's shell link stream by name and decodes it.
// Failures here never abort entry decoding; the entry simply carries no
// attached link, preserving the index metadata.
func attachLink(e *DestListEntry, streams []Stream) {
	if len(streams) == 0 {
		return
	}
	name := strconv.FormatUint(uint64(e.EntryNumber), 16)
	for _, s := range streams {
		if s.Name() != name {
			continue
		}
		data, err := io.ReadAll(s)
		if err != nil {
			return
		}
		l, err := shelllink.Decode(data)
		if err != nil {
			return
		}
		e.Link = l
		return
	}
}
