package shelllink

import (
	"errors"
	"fmt"

	"github.com/joshuapare/jumpkit/internal/buf"
	"github.com/joshuapare/jumpkit/internal/format"
)

// Extra data block signatures.
const (
	sigEnvironment     = 0xA0000001
	sigTracker         = 0xA0000003
	sigDarwin          = 0xA0000006
	sigIconEnvironment = 0xA0000007
	sigShim            = 0xA0000008
)

// Environment carries the unexpanded environment-variable form of the target.
type Environment struct {
	ANSI    string `json:"ansi,omitempty"`
	Unicode string `json:"unicode,omitempty"`
}

// Darwin carries the Windows Installer application identifier.
type Darwin struct {
	ANSI    string `json:"ansi,omitempty"`
	Unicode string `json:"unicode,omitempty"`
}

// IconEnvironment carries the environment-variable form of the icon location.
type IconEnvironment struct {
	ANSI    string `json:"ansi,omitempty"`
	Unicode string `json:"unicode,omitempty"`
}

// Shim carries the application compatibility layer name.
type Shim struct {
	LayerName string `json:"layer_name,omitempty"`
}

// Tracker carries distributed link tracking data, including the NetBIOS name
// of the machine the target lived on.
type Tracker struct {
	Version    uint32         `json:"version"`
	MachineID  string         `json:"machine_id"`
	Droid      [2]format.GUID `json:"droid"`
	DroidBirth [2]format.GUID `json:"droid_birth"`
}

// decodeExtraData walks the size/signature-prefixed extra data blocks at the
// tail of a link. The list terminates on a block size smaller than 4.
func decodeExtraData(r *format.Reader, l *Link) error {
	for r.Remaining() >= 4 {
		start := r.Offset()
		size, err := r.U32("extra data block size")
		if err != nil {
			return err
		}
		if size < 4 {
			return nil // terminal block
		}
		if size < 8 {
			return fmt.Errorf("extra data block size %d: %w", size, format.ErrTruncated)
		}
		sig, err := r.U32("extra data block signature")
		if err != nil {
			return err
		}
		if err := r.Skip("extra data block body", int(size)-8); err != nil {
			return err
		}
		block, ok := r.Slice(start, start+int(size))
		if !ok {
			return fmt.Errorf("extra data block: %w", format.ErrTruncated)
		}
		// A malformed known block is dropped, not fatal: the link body has
		// already decoded and the block boundary is intact.
		switch sig {
		case sigEnvironment:
			if e, err := parseExtraEnvironment(size, block); err == nil {
				l.Environment = e
			}
		case sigDarwin:
			if d, err := parseExtraDarwin(size, block); err == nil {
				l.Darwin = d
			}
		case sigIconEnvironment:
			if ie, err := parseExtraIconEnvironment(size, block); err == nil {
				l.IconEnvironment = ie
			}
		case sigShim:
			if s, err := parseExtraShim(size, block); err == nil {
				l.Shim = s
			}
		case sigTracker:
			if tr, err := parseExtraTracker(size, block); err == nil {
				l.Tracker = tr
			}
		}
	}
	return nil
}

func parseExtraEnvironment(size uint32, data []byte) (*Environment, error) {
	if size != 0x00000314 {
		return nil, errors.New("invalid extra environment block size")
	}
	return &Environment{
		ANSI:    readString(data[8:268], 0),
		Unicode: readUnicode(data[268:788], 0),
	}, nil
}

func parseExtraDarwin(size uint32, data []byte) (*Darwin, error) {
	if size != 0x00000314 {
		return nil, errors.New("invalid extra darwin block size")
	}
	return &Darwin{
		ANSI:    readString(data[8:268], 0),
		Unicode: readUnicode(data[268:788], 0),
	}, nil
}

func parseExtraIconEnvironment(size uint32, data []byte) (*IconEnvironment, error) {
	if size != 0x00000314 {
		return nil, errors.New("invalid extra icon environment block size")
	}
	return &IconEnvironment{
		ANSI:    readString(data[8:268], 0),
		Unicode: readUnicode(data[268:788], 0),
	}, nil
}

func parseExtraShim(size uint32, data []byte) (*Shim, error) {
	if size < 0x00000088 {
		return nil, errors.New("invalid extra shim block size")
	}
	return &Shim{
		LayerName: readUnicode(data, 8),
	}, nil
}

func parseExtraTracker(size uint32, data []byte) (*Tracker, error) {
	if size < 0x00000060 {
		return nil, errors.New("invalid extra tracker block size")
	}
	tr := &Tracker{
		Version:   buf.U32LE(data[12:]),
		MachineID: readString(data[16:32], 0),
	}
	copy(tr.Droid[0][:], data[32:48])
	copy(tr.Droid[1][:], data[48:64])
	copy(tr.DroidBirth[0][:], data[64:80])
	copy(tr.DroidBirth[1][:], data[80:96])
	return tr, nil
}

// readString reads a NUL-terminated ANSI string from data starting at offset.
func readString(data []byte, offset int) string {
	if offset < 0 || offset >= len(data) {
		return ""
	}
	end := offset
	for end < len(data) && data[end] != 0 {
		end++
	}
	return decodeANSI(data[offset:end])
}

// readUnicode reads a NUL-terminated UTF-16LE string from data starting at offset.
func readUnicode(data []byte, offset int) string {
	if offset < 0 || offset >= len(data) {
		return ""
	}
	return format.DecodeUTF16LENulTerminated(data[offset:])
}
