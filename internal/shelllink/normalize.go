package shelllink

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TargetPath reconstructs the most complete target path the link carries:
// local base path plus suffix when the target was local, the network share
// otherwise, falling back to the relative path from the string section.
func (l *Link) TargetPath() string {
	if l.Info != nil {
		if l.Info.LocalBasePath != "" {
			return l.Info.LocalBasePath + l.Info.CommonPathSuffix
		}
		if l.Info.NetworkShareName != "" {
			p := l.Info.NetworkShareName
			if l.Info.CommonPathSuffix != "" {
				p = strings.TrimRight(p, `\`) + `\` + l.Info.CommonPathSuffix
			}
			return p
		}
	}
	return l.StringData.RelativePath
}

// NameString returns the link's display name and whether it was present.
func (l *Link) NameString() (string, bool) {
	return l.StringData.Name, l.Header.Has(FlagHasName)
}

// CommandLineArguments returns the link's arguments and whether they were present.
func (l *Link) CommandLineArguments() (string, bool) {
	return l.StringData.Arguments, l.Header.Has(FlagHasArguments)
}

// Normalize flattens the link into string key/value pairs for reporting.
// Optional fields appear only when the link carries them.
func (l *Link) Normalize() map[string]string {
	m := map[string]string{
		"target_full_path": l.TargetPath(),
		"target_size":      strconv.FormatUint(uint64(l.Header.FileSize), 10),
		"mtime":            l.Header.WriteTime.Format(time.RFC3339),
		"atime":            l.Header.AccessTime.Format(time.RFC3339),
		"ctime":            l.Header.CreationTime.Format(time.RFC3339),
	}
	if l.StringData.RelativePath != "" {
		m["relative_path"] = l.StringData.RelativePath
	}
	if l.StringData.WorkingDir != "" {
		m["working_dir"] = l.StringData.WorkingDir
	}
	if l.StringData.IconLocation != "" {
		m["icon_location"] = l.StringData.IconLocation
	}
	if l.Tracker != nil {
		m["machine_id"] = l.Tracker.MachineID
	}
	if l.Info != nil {
		m["drive_type"] = strconv.FormatUint(uint64(l.Info.DriveType), 10)
		m["drive_serial_number"] = fmt.Sprintf("%08X", l.Info.DriveSerialNumber)
		if l.Info.VolumeLabel != "" {
			m["volume_label"] = l.Info.VolumeLabel
		}
	}
	if l.Environment != nil {
		if l.Environment.Unicode != "" {
			m["environment_variables_path"] = l.Environment.Unicode
		} else if l.Environment.ANSI != "" {
			m["environment_variables_path"] = l.Environment.ANSI
		}
	}
	return m
}
