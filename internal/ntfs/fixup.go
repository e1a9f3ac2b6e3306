package ntfs

import (
	"encoding/binary"
	"fmt"
)

// sectorSize is the fixed unit RecordFixup operates over. NTFS always
// stamps/fixes up 512-byte sectors regardless of the volume's
// bytes-per-sector, since the update sequence array predates 4Kn sectors.
const sectorSize = 512

// ApplyFixup corrects a raw file-record-segment buffer in place using its
// Multi-Sector Header's update sequence array (USA): the stored stamp at the
// last two bytes of every in-range 512-byte sector must equal usa[0]; it is
// then overwritten with usa[i] (sectors in order). A stamp mismatch, or a
// USA count too large for the record's size, makes the record ErrCorruptRecord
// — the caller is expected to skip it and continue the pass, never abort.
func ApplyFixup(record []byte, usaOffset, usaCount uint16) error {
	maxUSACount := uint16(len(record)/sectorSize) + 1
	if usaCount == 0 || usaCount > maxUSACount {
		return fmt.Errorf("%w: usa count %d exceeds bound %d for a %d-byte record", ErrCorruptRecord, usaCount, maxUSACount, len(record))
	}

	usaStart := int(usaOffset)
	usaBytes := int(usaCount) * 2
	if usaStart+usaBytes > len(record) {
		return fmt.Errorf("%w: update sequence array overruns record", ErrCorruptRecord)
	}

	usa := record[usaStart : usaStart+usaBytes]
	stamp := binary.LittleEndian.Uint16(usa[0:2])

	sectors := int(usaCount) - 1
	for s := 0; s < sectors; s++ {
		sectorEnd := (s+1)*sectorSize - 2
		if sectorEnd+2 > len(record) {
			break
		}
		got := binary.LittleEndian.Uint16(record[sectorEnd : sectorEnd+2])
		if got != stamp {
			return fmt.Errorf("%w: sector %d fixup stamp mismatch", ErrCorruptRecord, s)
		}
		replacement := usa[(s+1)*2 : (s+1)*2+2]
		copy(record[sectorEnd:sectorEnd+2], replacement)
	}
	return nil
}
