package ntfs

// FSType tags a BootSector with the filesystem BootSectorDecoder found.
// DecodeBootSector only ever sets NTFS: a boot sector that fails validation
// returns ErrNotNTFS instead of a tagged BootSector, and no FAT, exFAT or
// ext2 detection is performed, so the remaining values are named but never
// assigned by the decoder.
type FSType int

const (
	Unknown FSType = iota
	NTFS
	FAT12
	FAT16
	FAT32
	ExFAT
	EXT2
)

func (t FSType) String() string {
	switch t {
	case NTFS:
		return "NTFS"
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	case ExFAT:
		return "exFAT"
	case EXT2:
		return "ext2"
	default:
		return "unknown"
	}
}
