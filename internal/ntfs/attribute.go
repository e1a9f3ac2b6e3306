package ntfs

import (
	"encoding/binary"
	"fmt"
)

// AttributeType identifies the kind of a typed attribute stream entry.
// Values match the on-disk NTFS attribute type codes.
type AttributeType uint32

const (
	AttributeStandardInformation AttributeType = 0x10
	AttributeAttributeList       AttributeType = 0x20
	AttributeFileName            AttributeType = 0x30
	AttributeObjectID            AttributeType = 0x40
	AttributeSecurityDescriptor  AttributeType = 0x50
	AttributeVolumeName          AttributeType = 0x60
	AttributeVolumeInformation   AttributeType = 0x70
	AttributeData                AttributeType = 0x80
	AttributeIndexRoot           AttributeType = 0x90
	AttributeIndexAllocation     AttributeType = 0xA0
	AttributeBitmap              AttributeType = 0xB0
	AttributeReparsePoint        AttributeType = 0xC0
	AttributeEAInformation       AttributeType = 0xD0
	AttributeEA                  AttributeType = 0xE0
	AttributePropertySet         AttributeType = 0xF0
	AttributeLoggedUtilityStream AttributeType = 0x100

	attributeTerminator AttributeType = 0xFFFFFFFF
)

// Attribute is one decoded entry from a file record's attribute stream. Raw
// holds the attribute's full byte range (header, name, and resident
// value/non-resident run-list) for type-specific decoding downstream.
type Attribute struct {
	Type         AttributeType
	NonResident  bool
	Name         []uint16
	Raw          []byte // full attribute bytes, header included

	// Resident-only.
	ValueOffset uint16
	ValueLength uint32

	// Non-resident-only.
	LowVCN          int64
	HighVCN         int64
	RunArrayOffset  uint16
	AllocatedSize   uint64
	DataSize        uint64
	InitializedSize uint64
}

const attributeHeaderSize = 16

// WalkAttributes iterates the typed attribute stream of a fixed-up file
// record, starting at firstAttributeOffset, calling visit for each decoded
// attribute. Iteration ends cleanly at the 0xFFFFFFFF sentinel or when visit
// returns false. Running past the record's end, or a type id outside
// [0x10, 0x100], stops it with ErrCorruptRecord. Every read is bounds-checked against the
// remaining record length rather than trusting attribute-declared offsets,
// per the "byte cursor with remaining length" design.
func WalkAttributes(record []byte, firstAttributeOffset uint16, visit func(Attribute) (keepGoing bool)) error {
	offset := int(firstAttributeOffset)
	if offset > len(record) {
		return fmt.Errorf("%w: first attribute offset %d past record end (%d bytes)", ErrCorruptRecord, offset, len(record))
	}
	for {
		remaining := record[offset:]
		if len(remaining) < 4 {
			return fmt.Errorf("%w: attribute stream runs past record end", ErrCorruptRecord)
		}
		attrType := AttributeType(binary.LittleEndian.Uint32(remaining[0:4]))
		if attrType == attributeTerminator {
			return nil
		}
		if attrType < AttributeStandardInformation || attrType > AttributeLoggedUtilityStream {
			return fmt.Errorf("%w: attribute type 0x%X outside valid range", ErrCorruptRecord, attrType)
		}
		if len(remaining) < attributeHeaderSize {
			return fmt.Errorf("%w: attribute header truncated", ErrCorruptRecord)
		}

		length := binary.LittleEndian.Uint32(remaining[4:8])
		if length < attributeHeaderSize || int(length) > len(remaining) {
			return fmt.Errorf("%w: attribute length %d invalid", ErrCorruptRecord, length)
		}

		attr, err := parseAttribute(remaining[:length], attrType)
		if err != nil {
			return err
		}
		if !visit(attr) {
			return nil
		}
		offset += int(length)
	}
}

// FindAttribute returns the first attribute of the given type, scanning with
// WalkAttributes. Reports ok=false (no error) if none is found before the
// stream ends cleanly.
func FindAttribute(record []byte, firstAttributeOffset uint16, want AttributeType) (Attribute, bool, error) {
	var found Attribute
	ok := false
	err := WalkAttributes(record, firstAttributeOffset, func(a Attribute) bool {
		if a.Type == want {
			found = a
			ok = true
			return false
		}
		return true
	})
	return found, ok, err
}

func parseAttribute(raw []byte, attrType AttributeType) (Attribute, error) {
	nonResident := raw[8] != 0
	nameLength := int(raw[9])
	nameOffset := binary.LittleEndian.Uint16(raw[10:12])

	attr := Attribute{Type: attrType, NonResident: nonResident, Raw: raw}

	if nameLength > 0 {
		if int(nameOffset)+nameLength*2 > len(raw) {
			return Attribute{}, fmt.Errorf("%w: attribute name overruns attribute", ErrCorruptRecord)
		}
		attr.Name = decodeUTF16(raw[nameOffset : int(nameOffset)+nameLength*2])
	}

	if !nonResident {
		if len(raw) < 0x18 {
			return Attribute{}, fmt.Errorf("%w: resident attribute header truncated", ErrCorruptRecord)
		}
		attr.ValueLength = binary.LittleEndian.Uint32(raw[0x10:0x14])
		attr.ValueOffset = binary.LittleEndian.Uint16(raw[0x14:0x16])
		return attr, nil
	}

	if len(raw) < 0x40 {
		return Attribute{}, fmt.Errorf("%w: non-resident attribute header truncated", ErrCorruptRecord)
	}
	attr.LowVCN = int64(binary.LittleEndian.Uint64(raw[0x10:0x18]))
	attr.HighVCN = int64(binary.LittleEndian.Uint64(raw[0x18:0x20]))
	attr.RunArrayOffset = binary.LittleEndian.Uint16(raw[0x20:0x22])
	attr.AllocatedSize = binary.LittleEndian.Uint64(raw[0x28:0x30])
	attr.DataSize = binary.LittleEndian.Uint64(raw[0x30:0x38])
	attr.InitializedSize = binary.LittleEndian.Uint64(raw[0x38:0x40])
	return attr, nil
}

// RunList decodes the non-resident attribute's data-run list.
func (a Attribute) RunList() ([]Run, error) {
	if !a.NonResident {
		return nil, fmt.Errorf("ntfs: RunList called on a resident attribute")
	}
	if int(a.RunArrayOffset) > len(a.Raw) {
		return nil, fmt.Errorf("%w: run array offset out of range", ErrCorruptRecord)
	}
	return DecodeRunList(a.Raw[a.RunArrayOffset:])
}

// Value returns a resident attribute's payload bytes.
func (a Attribute) Value() ([]byte, error) {
	if a.NonResident {
		return nil, fmt.Errorf("ntfs: Value called on a non-resident attribute")
	}
	end := int(a.ValueOffset) + int(a.ValueLength)
	if end > len(a.Raw) {
		return nil, fmt.Errorf("%w: resident value overruns attribute", ErrCorruptRecord)
	}
	return a.Raw[a.ValueOffset:end], nil
}

func decodeUTF16(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return out
}
