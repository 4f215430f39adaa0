package shelllink

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/jumpkit/internal/buf"
	"github.com/joshuapare/jumpkit/internal/format"
)

// LinkInfo flag bits.
const (
	linkInfoHasVolumeIDAndLocalBasePath   = 0x01
	linkInfoHasCommonNetworkRelativeLink  = 0x02
	linkInfoHeaderSizeWithUnicodeOffsets  = 0x24
	linkInfoMinSize                       = 0x1C
	volumeIDLabelOffsetUnicodeIndirection = 0x14
)

// LinkInfo describes where the link target lived when the link was created:
// a local volume, a network share, or both.
type LinkInfo struct {
	Flags             uint32 `json:"flags"`
	DriveType         uint32 `json:"drive_type,omitempty"`
	DriveSerialNumber uint32 `json:"drive_serial_number,omitempty"`
	VolumeLabel       string `json:"volume_label,omitempty"`
	LocalBasePath     string `json:"local_base_path,omitempty"`
	NetworkShareName  string `json:"network_share_name,omitempty"`
	DeviceName        string `json:"device_name,omitempty"`
	CommonPathSuffix  string `json:"common_path_suffix,omitempty"`
}

// parseLinkInfo decodes a LinkInfo structure from its whole block, size field
// included. All offsets inside the block are relative to the block start.
func parseLinkInfo(block []byte) (*LinkInfo, error) {
	if len(block) < linkInfoMinSize {
		return nil, fmt.Errorf("link info header: %w", format.ErrTruncated)
	}
	info := &LinkInfo{}
	hdrSize := buf.U32LE(block[4:])
	info.Flags = buf.U32LE(block[8:])
	volumeIDOffset := buf.U32LE(block[12:])
	localBasePathOffset := buf.U32LE(block[16:])
	networkRelativeLinkOffset := buf.U32LE(block[20:])
	commonPathSuffixOffset := buf.U32LE(block[24:])

	var localBasePathOffsetUnicode, commonPathSuffixOffsetUnicode uint32
	if hdrSize >= linkInfoHeaderSizeWithUnicodeOffsets && len(block) >= 0x24 {
		localBasePathOffsetUnicode = buf.U32LE(block[28:])
		commonPathSuffixOffsetUnicode = buf.U32LE(block[32:])
	}

	if info.Flags&linkInfoHasVolumeIDAndLocalBasePath != 0 {
		parseVolumeID(block, int(volumeIDOffset), info)
		if localBasePathOffsetUnicode != 0 {
			info.LocalBasePath = unicodeStringAt(block, int(localBasePathOffsetUnicode))
		} else {
			info.LocalBasePath = ansiStringAt(block, int(localBasePathOffset))
		}
	}
	if info.Flags&linkInfoHasCommonNetworkRelativeLink != 0 {
		parseNetworkRelativeLink(block, int(networkRelativeLinkOffset), info)
	}
	if commonPathSuffixOffsetUnicode != 0 {
		info.CommonPathSuffix = unicodeStringAt(block, int(commonPathSuffixOffsetUnicode))
	} else {
		info.CommonPathSuffix = ansiStringAt(block, int(commonPathSuffixOffset))
	}
	return info, nil
}

func parseVolumeID(block []byte, off int, info *LinkInfo) {
	vol, ok := buf.Slice(block, off, len(block)-off)
	if !ok || len(vol) < 16 {
		return
	}
	info.DriveType = buf.U32LE(vol[4:])
	info.DriveSerialNumber = buf.U32LE(vol[8:])
	labelOffset := buf.U32LE(vol[12:])
	if labelOffset == volumeIDLabelOffsetUnicodeIndirection && len(vol) >= 20 {
		// A label offset of 0x14 means the real label is unicode, at the
		// offset stored in the following field.
		info.VolumeLabel = unicodeStringAt(vol, int(buf.U32LE(vol[16:])))
		return
	}
	info.VolumeLabel = ansiStringAt(vol, int(labelOffset))
}

func parseNetworkRelativeLink(block []byte, off int, info *LinkInfo) {
	cnrl, ok := buf.Slice(block, off, len(block)-off)
	if !ok || len(cnrl) < 20 {
		return
	}
	netNameOffset := buf.U32LE(cnrl[8:])
	deviceNameOffset := buf.U32LE(cnrl[12:])
	info.NetworkShareName = ansiStringAt(cnrl, int(netNameOffset))
	if deviceNameOffset != 0 {
		info.DeviceName = ansiStringAt(cnrl, int(deviceNameOffset))
	}
}

// ansiStringAt reads a NUL-terminated Windows-1252 string starting at off.
// Returns "" when off is zero or out of bounds.
func ansiStringAt(b []byte, off int) string {
	if off <= 0 || off >= len(b) {
		return ""
	}
	end := off
	for end < len(b) && b[end] != 0 {
		end++
	}
	return decodeANSI(b[off:end])
}

// unicodeStringAt reads a NUL-terminated UTF-16LE string starting at off.
func unicodeStringAt(b []byte, off int) string {
	if off <= 0 || off >= len(b) {
		return ""
	}
	return format.DecodeUTF16LENulTerminated(b[off:])
}

// decodeANSI decodes Windows-1252 bytes. Jump lists come from Windows
// systems where the ANSI code page for these fields is 1252 in practice.
func decodeANSI(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
