package jumplist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/jumpkit/internal/shelllink"
)

func TestTypeForFilename(t *testing.T) {
	typ, err := TypeForFilename("5f7b5f1e01b83767.automaticDestinations-ms")
	require.NoError(t, err)
	require.Equal(t, TypeAutomatic, typ)

	typ, err = TypeForFilename("1ced32d74a95c7bc.customDestinations-ms")
	require.NoError(t, err)
	require.Equal(t, TypeCustom, typ)

	_, err = TypeForFilename("notes.txt")
	require.ErrorIs(t, err, ErrUnknownFileType)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "automatic", TypeAutomatic.String())
	require.Equal(t, "custom", TypeCustom.String())
}

func TestDecodeFileCustom(t *testing.T) {
	var b bytes.Buffer
	customHeader(&b, 3, 1)
	putU32(&b, uint32(CategoryKnown))
	putU32(&b, 2)
	putU32(&b, 0) // footer

	dir := t.TempDir()
	path := filepath.Join(dir, "5f7b5f1e01b83767.customDestinations-ms")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

	rec, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, TypeCustom, rec.Type)
	require.Equal(t, "5f7b5f1e01b83767", rec.AppID)
	require.Equal(t, "Quick Access", rec.AppName)
	require.Equal(t, path, rec.SourcePath)
	require.NotNil(t, rec.CustomDestinations)
	require.Nil(t, rec.DestList)
}

func TestDecodeFileUnknownSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "something.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := DecodeFile(path)
	require.ErrorIs(t, err, ErrUnknownFileType)
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "gone.customDestinations-ms"))
	require.Error(t, err)
}

func TestDecodeAutomaticRejectsBadContainer(t *testing.T) {
	_, err := Decode([]byte("definitely not a compound file"), TypeAutomatic)
	require.Error(t, err)
	require.Contains(t, err.Error(), "compound container")
}

func TestStreamBufSizeRejectsCorruptSizes(t *testing.T) {
	// Directory-entry sizes are untrusted; anything past the container is
	// corrupt metadata and must not drive an allocation.
	require.Equal(t, 0, streamBufSize(1<<40, 4096))
	require.Equal(t, 0, streamBufSize(-1, 4096))
	require.Equal(t, 0, streamBufSize(0, 4096))
	require.Equal(t, 512, streamBufSize(512, 4096))
	require.Equal(t, 4096, streamBufSize(4096, 4096))
}

func TestRecordFlattenMergesIdentity(t *testing.T) {
	// HasName|HasArguments|IsUnicode with the two string entries in order.
	link, err := shelllink.Decode(minimalLink(0x04|0x20|0x80, "Readme", "--open"))
	require.NoError(t, err)

	rec := &Record{
		AppID:      "5d696d521de238c3",
		AppName:    "Google Chrome",
		Type:       TypeAutomatic,
		SourcePath: "/evidence/5d696d521de238c3.automaticDestinations-ms",
		DestList: &DestList{
			Entries: []*DestListEntry{
				{EntryNumber: 2, Link: link},
				{EntryNumber: 1}, // no link: contributes an empty row
			},
		},
	}

	rows := rec.Flatten()
	require.Len(t, rows, 2)

	require.Equal(t, "Readme", rows[0]["name_string"])
	require.Equal(t, "--open", rows[0]["command_line_arguments"])
	require.Equal(t, rec.AppID, rows[0]["app_id"])
	require.Equal(t, rec.AppName, rows[0]["app_name"])
	require.Equal(t, rec.SourcePath, rows[0]["jumplist_file_path"])

	// The linkless entry carries identity only.
	require.Equal(t, rec.AppID, rows[1]["app_id"])
	require.NotContains(t, rows[1], "name_string")
}

func TestCustomDestinationsFlattenSkipsLinkless(t *testing.T) {
	id := KnownCategoryRecent
	cd := &CustomDestinations{
		Categories: []Category{
			{Type: CategoryKnown, ID: &id},
		},
	}
	require.Empty(t, cd.Flatten())
}

func TestCustomDestinationsFlattenDefaults(t *testing.T) {
	link, err := shelllink.Decode(minimalLink(0))
	require.NoError(t, err)
	cd := &CustomDestinations{
		Categories: []Category{
			{Type: CategoryTask, EntryCount: 1, Entries: []*shelllink.Link{link}},
		},
	}
	rows := cd.Flatten()
	require.Len(t, rows, 1)
	require.Equal(t, "", rows[0]["name_string"])
	require.Equal(t, "", rows[0]["command_line_arguments"])
}
