package ntfs_test

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
)

// buildFileNameValue assembles a resident $FILE_NAME attribute value: the
// 66-byte fixed portion followed by the UTF-16LE name.
func buildFileNameValue(parent uint64, nameType ntfs.NameType, name string) []byte {
	nameUnits := utf16.Encode([]rune(name))
	const fixedSize = 66
	value := make([]byte, fixedSize+len(nameUnits)*2)

	binary.LittleEndian.PutUint64(value[0:8], parent)
	value[64] = byte(len(nameUnits))
	value[65] = byte(nameType)

	off := fixedSize
	for _, u := range nameUnits {
		binary.LittleEndian.PutUint16(value[off:off+2], u)
		off += 2
	}
	return value
}

// buildFileRecord assembles a minimal valid FILE record: header, usaCount=1
// (no sector stamps to correct), one resident $FILE_NAME attribute, sentinel.
func buildFileRecord(flags ntfs.RecordFlag, baseRecord uint64, fileName []byte) []byte {
	const usaOffset = 0x30
	const firstAttrOffset = 64

	attr := buildResidentAttribute(ntfs.AttributeFileName, fileName)
	stream := append(append([]byte{}, attr...), 0xFF, 0xFF, 0xFF, 0xFF)

	record := make([]byte, firstAttrOffset+len(stream))
	copy(record[0:4], "FILE")
	binary.LittleEndian.PutUint16(record[4:6], usaOffset)
	binary.LittleEndian.PutUint16(record[6:8], 1) // usaCount
	binary.LittleEndian.PutUint16(record[0x14:0x16], firstAttrOffset)
	binary.LittleEndian.PutUint16(record[0x16:0x18], uint16(flags))
	binary.LittleEndian.PutUint64(record[0x20:0x28], baseRecord)
	copy(record[firstAttrOffset:], stream)
	return record
}

func TestDecodeRecord_ValidFileWithName(t *testing.T) {
	fileName := buildFileNameValue(5, ntfs.NameWin32, "report.docx")
	record := buildFileRecord(ntfs.RecordInUse, 0, fileName)

	decoded, err := ntfs.DecodeRecord(record)
	require.NoError(t, err)
	require.True(t, decoded.Valid)
	require.True(t, decoded.Flags.Is(ntfs.RecordInUse))
	require.False(t, decoded.IsExtension)
	require.Equal(t, uint64(5), decoded.ParentRef)
	require.Equal(t, "report.docx", string(utf16.Decode(decoded.Name)))
}

func TestDecodeRecord_DOSOnlyNameIsSkipped(t *testing.T) {
	fileName := buildFileNameValue(5, ntfs.NameDOS, "REPORT~1.DOC")
	record := buildFileRecord(ntfs.RecordInUse, 0, fileName)

	decoded, err := ntfs.DecodeRecord(record)
	require.NoError(t, err)
	require.True(t, decoded.Valid)
	require.Nil(t, decoded.Name)
}

func TestDecodeRecord_ExtensionRecord(t *testing.T) {
	fileName := buildFileNameValue(5, ntfs.NameWin32, "data")
	record := buildFileRecord(ntfs.RecordInUse, 42, fileName)

	decoded, err := ntfs.DecodeRecord(record)
	require.NoError(t, err)
	require.True(t, decoded.IsExtension)
	require.Equal(t, uint64(42), decoded.BaseRecord)
}

func TestDecodeRecord_BadSignatureIsSoftFailure(t *testing.T) {
	record := make([]byte, 128)
	copy(record[0:4], "BAAD")

	decoded, err := ntfs.DecodeRecord(record)
	require.NoError(t, err)
	require.False(t, decoded.Valid)
}

func TestFileReference_MasksSequenceNumber(t *testing.T) {
	ref := uint64(0x1234_0000_0000_002A)
	require.Equal(t, uint64(0x2A), ntfs.FileReference(ref))
}
