package ntfs

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ntfsidx/ntfsidx/internal/rawdevice"
)

const bootSectorSize = 512

// rawBootSector maps the first 512 bytes of an NTFS volume. Multi-byte
// fields are byte arrays rather than native integers, the same technique
// this codebase's FAT boot-sector reader uses, so binary.Read packs them
// with no struct-alignment surprises and endianness stays explicit.
type rawBootSector struct {
	JumpInstruction [3]byte
	OEMID           [8]byte
	BytesPerSector  [2]byte
	SectorsPerCluster byte
	ReservedSectors [2]byte
	Unused1         [5]byte
	MediaDescriptor byte
	Unused2         [2]byte
	SectorsPerTrack [2]byte
	NumberOfHeads   [2]byte
	HiddenSectors   [4]byte
	Unused3         [8]byte
	TotalSectors    [8]byte
	MFTLCN          [8]byte
	MFTMirrLCN      [8]byte
	ClustersPerFileRecordSegment int8
	Unused4         [3]byte
	ClustersPerIndexBuffer int8
	Unused5         [3]byte
	VolumeSerialNumber [8]byte
	Checksum        [4]byte
	BootCode        [426]byte
	EndMarker       [2]byte
}

// BootSector is the decoded, validated form of rawBootSector plus the
// derived geometry BootSectorDecoder is responsible for.
type BootSector struct {
	FSType FSType

	BytesPerSector  uint32
	BytesPerCluster uint32

	// BytesPerFileRecordSegment is derived from the signed
	// ClustersPerFileRecordSegment field: positive values multiply by
	// BytesPerCluster; negative values (NTFS convention) encode
	// 2^(-n) bytes directly.
	BytesPerFileRecordSegment uint32

	MFTStartLCN  int64
	MFTStartByte int64

	TotalSectors       uint64
	VolumeSerialNumber uint64
}

// DecodeBootSector reads and validates the first sector of a volume,
// returning ErrNotNTFS if the OEM marker or boot signature don't match.
func DecodeBootSector(h rawdevice.Handle) (*BootSector, error) {
	buf := make([]byte, bootSectorSize)
	if _, err := h.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("%w: reading boot sector: %v", ErrDeviceOpen, err)
	}

	var raw rawBootSector
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &raw); err != nil {
		return nil, fmt.Errorf("ntfs: decoding boot sector: %w", err)
	}

	if !bytes.Equal(raw.OEMID[:], []byte("NTFS    ")) {
		return nil, fmt.Errorf("%w: OEM id %q", ErrNotNTFS, raw.OEMID)
	}
	if binary.LittleEndian.Uint16(raw.EndMarker[:]) != 0xAA55 {
		return nil, fmt.Errorf("%w: missing boot signature", ErrNotNTFS)
	}

	bytesPerSector := uint32(binary.LittleEndian.Uint16(raw.BytesPerSector[:]))
	bytesPerCluster := bytesPerSector * uint32(raw.SectorsPerCluster)

	bs := &BootSector{
		FSType:             NTFS,
		BytesPerSector:     bytesPerSector,
		BytesPerCluster:    bytesPerCluster,
		MFTStartLCN:        int64(binary.LittleEndian.Uint64(raw.MFTLCN[:])),
		TotalSectors:       binary.LittleEndian.Uint64(raw.TotalSectors[:]),
		VolumeSerialNumber: binary.LittleEndian.Uint64(raw.VolumeSerialNumber[:]),
	}
	bs.BytesPerFileRecordSegment = recordSegmentBytes(raw.ClustersPerFileRecordSegment, bytesPerCluster)
	bs.MFTStartByte = bs.MFTStartLCN * int64(bytesPerCluster)

	if frs, mftLCN, err := rawdevice.NTFSVolumeData(h); err == nil && frs != 0 {
		bs.BytesPerFileRecordSegment = frs
		if mftLCN != 0 {
			bs.MFTStartLCN = mftLCN
			bs.MFTStartByte = mftLCN * int64(bytesPerCluster)
		}
	}

	return bs, nil
}

// recordSegmentBytes honours the NTFS convention that a negative
// clusters-per-file-record-segment value n encodes 2^(-n) bytes directly,
// rather than a cluster count.
func recordSegmentBytes(clustersPerSegment int8, bytesPerCluster uint32) uint32 {
	if clustersPerSegment >= 0 {
		return uint32(clustersPerSegment) * bytesPerCluster
	}
	return 1 << uint(-int(clustersPerSegment))
}
