package ntfs

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
)

var fileRecordSignature = [4]byte{'F', 'I', 'L', 'E'}

// RecordFlag bits from a file record's multi-sector header.
type RecordFlag uint16

const (
	RecordInUse       RecordFlag = 0x0001
	RecordIsDirectory RecordFlag = 0x0002
)

// Is reports whether every bit in want is set.
func (f RecordFlag) Is(want RecordFlag) bool { return f&want == want }

// recordHeader is the fixed portion of a file-record-segment's multi-sector
// header, read directly off the raw (pre-fixup) bytes: the update sequence
// array fields are needed to apply fixup in the first place, so they can't
// wait for a fixed-up read.
type recordHeader struct {
	signature             [4]byte
	usaOffset             uint16
	usaCount              uint16
	sequenceNumber        uint16
	linkCount             uint16
	firstAttributeOffset  uint16
	flags                 RecordFlag
	bytesInUse            uint32
	bytesAllocated        uint32
	baseFileRecordSegment uint64
	nextAttributeNumber   uint16
}

func parseRecordHeader(raw []byte) (recordHeader, error) {
	if len(raw) < 0x2A {
		return recordHeader{}, fmt.Errorf("%w: record header truncated", ErrCorruptRecord)
	}
	var h recordHeader
	copy(h.signature[:], raw[0:4])
	h.usaOffset = binary.LittleEndian.Uint16(raw[4:6])
	h.usaCount = binary.LittleEndian.Uint16(raw[6:8])
	h.sequenceNumber = binary.LittleEndian.Uint16(raw[0x10:0x12])
	h.linkCount = binary.LittleEndian.Uint16(raw[0x12:0x14])
	h.firstAttributeOffset = binary.LittleEndian.Uint16(raw[0x14:0x16])
	h.flags = RecordFlag(binary.LittleEndian.Uint16(raw[0x16:0x18]))
	h.bytesInUse = binary.LittleEndian.Uint32(raw[0x18:0x1C])
	h.bytesAllocated = binary.LittleEndian.Uint32(raw[0x1C:0x20])
	h.baseFileRecordSegment = binary.LittleEndian.Uint64(raw[0x20:0x28])
	h.nextAttributeNumber = binary.LittleEndian.Uint16(raw[0x28:0x2A])
	return h, nil
}

// FileReference extracts the 48-bit MFT entry number from an 8-byte NTFS
// file reference. The 16-bit sequence/reuse counter in the high bits is
// discarded, not returned.
func FileReference(ref uint64) (entry uint64) {
	return ref & 0x0000FFFFFFFFFFFF
}

// NameType distinguishes $FILE_NAME aliasing schemes.
type NameType uint8

const (
	NamePOSIX     NameType = 0
	NameWin32     NameType = 1
	NameDOS       NameType = 2
	NameWin32DOS  NameType = 3
)

// fileNameFixed is the fixed-width portion of a $FILE_NAME attribute's
// resident value, preceding the variable-length name itself. Decoded with
// restruct.Unpack since the layout is a flat sequence of fixed-width fields
// with no C-style padding to route around.
type fileNameFixed struct {
	ParentDirectory  uint64
	CreationTime     uint64
	ModificationTime uint64
	MFTChangeTime    uint64
	ReadTime         uint64
	AllocatedSize    uint64
	DataSize         uint64
	FileAttributes   uint32
	ReparseValue     uint32
	NameLength       uint8
	NameType         NameType
}

const fileNameFixedSize = 66 // bytes, up to and including NameType

// DecodedFileName is a parsed $FILE_NAME attribute.
type DecodedFileName struct {
	ParentEntry uint64
	NameType    NameType
	Name        []uint16
}

// DecodeFileName parses a resident $FILE_NAME attribute value.
func DecodeFileName(value []byte) (DecodedFileName, error) {
	if len(value) < fileNameFixedSize {
		return DecodedFileName{}, fmt.Errorf("%w: $FILE_NAME value truncated", ErrCorruptRecord)
	}
	var fixed fileNameFixed
	if err := restruct.Unpack(value[:fileNameFixedSize], binary.LittleEndian, &fixed); err != nil {
		return DecodedFileName{}, fmt.Errorf("%w: decoding $FILE_NAME: %v", ErrCorruptRecord, err)
	}

	nameBytes := int(fixed.NameLength) * 2
	if fileNameFixedSize+nameBytes > len(value) {
		return DecodedFileName{}, fmt.Errorf("%w: $FILE_NAME name overruns attribute", ErrCorruptRecord)
	}

	return DecodedFileName{
		ParentEntry: FileReference(fixed.ParentDirectory),
		NameType:    fixed.NameType,
		Name:        decodeUTF16(value[fileNameFixedSize : fileNameFixedSize+nameBytes]),
	}, nil
}

// isWin32OrPOSIX reports whether a name_type qualifies as the record's
// primary path-visible name: Win32, Win32DOS (Win32 bit set), or POSIX.
// DOS-only 8.3 aliases (NameDOS) are excluded.
func isWin32OrPOSIX(t NameType) bool {
	return t == NamePOSIX || t&NameWin32 != 0
}

// DecodedRecord is the output of decoding one bytes-per-file-record slice:
// the subset of fields RecordDecoder extracts for the index.
type DecodedRecord struct {
	Valid       bool // signature matched "FILE"; fields below are meaningful
	Flags       RecordFlag
	Name        []uint16
	ParentRef   uint64
	BaseRecord  uint64 // non-zero low 32 bits => this is an extension record
	IsExtension bool
}

// DecodeRecord applies fixup and extracts flags, the primary $FILE_NAME, and
// the base-record backref from one raw bytes-per-file-record slice. Soft
// failures (non-FILE signature, corrupt fixup) yield a zero-value
// (Valid=false) result and no error: the caller advances past the slot and
// continues the pass, per the decoder's fault-tolerance contract. A corrupt
// attribute stream yields a Valid result with the header's flags and
// base-record linkage but no name. Only a slice too small to hold a header
// at all returns an error.
func DecodeRecord(raw []byte) (DecodedRecord, error) {
	header, err := parseRecordHeader(raw)
	if err != nil {
		return DecodedRecord{}, err
	}
	if header.signature != fileRecordSignature {
		return DecodedRecord{}, nil
	}
	if err := ApplyFixup(raw, header.usaOffset, header.usaCount); err != nil {
		return DecodedRecord{}, nil
	}

	out := DecodedRecord{Valid: true, Flags: header.flags}

	baseEntry := header.baseFileRecordSegment & 0xFFFFFFFF
	if baseEntry != 0 {
		out.BaseRecord = baseEntry
		out.IsExtension = true
	}

	var primary *DecodedFileName
	walkErr := WalkAttributes(raw, header.firstAttributeOffset, func(a Attribute) bool {
		if a.Type != AttributeFileName || a.NonResident {
			return true
		}
		value, err := a.Value()
		if err != nil {
			return true
		}
		fn, err := DecodeFileName(value)
		if err != nil {
			return true
		}
		if !isWin32OrPOSIX(fn.NameType) {
			return true
		}
		if primary == nil {
			primary = &fn
		}
		return primary == nil
	})
	if walkErr != nil {
		// A corrupt attribute stream still yields a valid, nameless slot:
		// flags and base-record linkage already decoded above are kept.
		return out, nil
	}
	if primary != nil {
		out.Name = primary.Name
		out.ParentRef = primary.ParentEntry
	}
	return out, nil
}
