// Package jumplist decodes Windows jump list artifacts: the flat
// CustomDestinations format and the compound-container AutomaticDestinations
// format with its DestList index stream. Decoded records resolve embedded
// shell links and flatten into uniform key/value rows for reporting.
package jumplist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"

	"github.com/joshuapare/jumpkit/internal/mmfile"
)

// File name suffixes identifying the two jump list formats. Detection by
// suffix is authoritative; file content is never sniffed.
const (
	SuffixAutomatic = ".automaticDestinations-ms"
	SuffixCustom    = ".customDestinations-ms"
)

var (
	// ErrUnknownFileType indicates a filename matching neither known suffix.
	ErrUnknownFileType = errors.New("jumplist: unrecognized file type")
	// ErrEmbeddedLink indicates an embedded shell link that failed to decode
	// inside a CustomDestinations category, where such failures are fatal.
	ErrEmbeddedLink = errors.New("jumplist: embedded shell link decode failed")
)

// Type is the jump list artifact variant.
type Type int

const (
	// TypeAutomatic is a compound container with a DestList index stream.
	TypeAutomatic Type = iota
	// TypeCustom is the flat category-record stream format.
	TypeCustom
)

func (t Type) String() string {
	switch t {
	case TypeAutomatic:
		return "automatic"
	case TypeCustom:
		return "custom"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Record is one decoded jump list file: file-level identity plus the payload
// of whichever format the file carried. Identity fields are attached once
// after decode and the record is not mutated afterwards.
type Record struct {
	AppID              string              `json:"app_id,omitempty"`
	AppName            string              `json:"app_name,omitempty"`
	Type               Type                `json:"type"`
	SourcePath         string              `json:"source_path,omitempty"`
	DestList           *DestList           `json:"dest_list,omitempty"`
	CustomDestinations *CustomDestinations `json:"custom_destinations,omitempty"`
}

// TypeForFilename resolves the artifact type from a file name suffix.
func TypeForFilename(name string) (Type, error) {
	switch {
	case strings.HasSuffix(name, SuffixAutomatic):
		return TypeAutomatic, nil
	case strings.HasSuffix(name, SuffixCustom):
		return TypeCustom, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFileType)
}

// Decode parses raw artifact bytes as the given type.
func Decode(data []byte, typ Type) (*Record, error) {
	switch typ {
	case TypeAutomatic:
		dl, err := decodeAutomatic(data)
		if err != nil {
			return nil, err
		}
		return &Record{Type: typ, DestList: dl}, nil
	case TypeCustom:
		cd, err := DecodeCustomDestinations(data)
		if err != nil {
			return nil, err
		}
		return &Record{Type: typ, CustomDestinations: cd}, nil
	}
	return nil, fmt.Errorf("type %d: %w", typ, ErrUnknownFileType)
}

// DecodeFile loads and decodes a jump list file, deriving the application id
// from the filename stem and resolving its friendly name when known.
func DecodeFile(path string) (*Record, error) {
	name := filepath.Base(path)
	typ, err := TypeForFilename(name)
	if err != nil {
		return nil, err
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rec, err := Decode(data, typ)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rec.SourcePath = path
	if stem, _, found := strings.Cut(name, "."); found && stem != "" {
		rec.AppID = stem
		rec.AppName, _ = AppName(stem)
	}
	return rec, nil
}

// decodeAutomatic opens the compound container, reads the DestList stream in
// full, and hands the remaining stream listing to the DestList decoder for
// shell link correlation. The container handle lives only for the duration
// of this call.
func decodeAutomatic(data []byte) (*DestList, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compound container: %w", err)
	}
	var destListData []byte
	var streams []Stream
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == "DestList" {
			if n := streamBufSize(entry.Size, len(data)); n > 0 {
				b := make([]byte, n)
				if _, rerr := io.ReadFull(entry, b); rerr == nil {
					destListData = b
				}
			}
			continue
		}
		streams = append(streams, &cfbStream{f: entry})
	}
	return DecodeDestList(destListData, streams)
}

// streamBufSize validates a directory-entry stream size before it drives an
// allocation. A stream can never exceed the container it lives in, so sizes
// past that are corrupt metadata and read as empty.
func streamBufSize(size int64, containerLen int) int {
	if size <= 0 || size > int64(containerLen) {
		return 0
	}
	return int(size)
}

// StreamInfo describes one named stream of an automatic jump list's
// compound container.
type StreamInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ListStreams enumerates the compound-container streams of an automatic
// jump list file, in directory order.
func ListStreams(path string) ([]StreamInfo, error) {
	typ, err := TypeForFilename(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if typ != TypeAutomatic {
		return nil, fmt.Errorf("%s: only automatic jump lists carry streams", filepath.Base(path))
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compound container: %w", err)
	}
	var infos []StreamInfo
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		infos = append(infos, StreamInfo{
			Name: entry.Name,
			Path: strings.Join(append(entry.Path, entry.Name), "/"),
			Size: entry.Size,
		})
	}
	return infos, nil
}

// cfbStream adapts a compound-container entry to the Stream interface the
// DestList correlator consumes.
type cfbStream struct {
	f *mscfb.File
}

func (s *cfbStream) Read(p []byte) (int, error) { return s.f.Read(p) }
func (s *cfbStream) Name() string               { return s.f.Name }
func (s *cfbStream) Size() int64                { return s.f.Size }
