//go:build windows

package rawdevice

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// volumeHandle is a raw NTFS volume opened read-only with shared read/write
// access, so other processes may keep using the mounted volume while this
// decoder reads it.
type volumeHandle struct {
	h windows.Handle
}

// Open opens the volume at path (e.g. `\\.\C:`) for shared, read-only,
// positioned reads.
func Open(path string) (Handle, error) {
	h, err := windows.CreateFile(
		windows.StringToUTF16Ptr(path),
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateFile(%s): %v", ErrDeviceOpen, path, err)
	}
	return &volumeHandle{h: h}, nil
}

// ReadAt issues a sector-aligned positioned read, since raw volume handles on
// Windows reject reads that aren't aligned to the device's sector size.
func (v *volumeHandle) ReadAt(p []byte, off int64) (int, error) {
	const sectorSize = 512

	alignedOffset := off / sectorSize * sectorSize
	alignmentDiff := int(off - alignedOffset)
	alignedSize := ((len(p) + alignmentDiff + sectorSize - 1) / sectorSize) * sectorSize

	buf := make([]byte, alignedSize)

	var bytesRead uint32
	ov := new(windows.Overlapped)
	ov.Offset = uint32(alignedOffset)
	ov.OffsetHigh = uint32(alignedOffset >> 32)

	err := windows.ReadFile(v.h, buf, &bytesRead, ov)
	if err != nil {
		if err == syscall.ERROR_IO_PENDING {
			err = windows.GetOverlappedResult(v.h, ov, &bytesRead, true)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: ReadFile at %d: %v", ErrTruncatedRead, off, err)
		}
	}
	if int(bytesRead) < alignmentDiff+len(p) {
		n := 0
		if int(bytesRead) > alignmentDiff {
			n = copy(p, buf[alignmentDiff:bytesRead])
		}
		return n, fmt.Errorf("%w: read %d of %d bytes at %d", ErrTruncatedRead, n, len(p), off)
	}
	n := copy(p, buf[alignmentDiff:])
	return n, nil
}

func (v *volumeHandle) Close() error {
	return windows.CloseHandle(v.h)
}

// ntfsVolumeData mirrors the head of NTFS_VOLUME_DATA_BUFFER, the structure
// filled in by FSCTL_GET_NTFS_VOLUME_DATA, declared through MftZoneEnd.
// NTFSVolumeData reads only BytesPerFileRecordSegment and MftStartLcn.
type ntfsVolumeData struct {
	VolumeSerialNumber       int64
	NumberSectors            int64
	TotalClusters            int64
	FreeClusters             int64
	TotalReserved            int64
	BytesPerSector           uint32
	BytesPerCluster          uint32
	BytesPerFileRecordSegment uint32
	ClustersPerFileRecordSegment uint32
	MftValidDataLength       int64
	MftStartLcn              int64
	Mft2StartLcn             int64
	MftZoneStart             int64
	MftZoneEnd               int64
}

const fsctlGetNTFSVolumeData = 0x90064

// NTFSVolumeData issues FSCTL_GET_NTFS_VOLUME_DATA against an already-open
// volume handle, returning bytes-per-file-record-segment and the MFT start
// LCN directly from the filesystem driver rather than the boot sector. Used
// by BootSectorDecoder as a cross-check; callers tolerate this failing (the
// ioctl is not implemented on every backing store) and fall back to deriving
// the same values from the boot sector alone.
func NTFSVolumeData(h Handle) (bytesPerFileRecordSegment uint32, mftStartLCN int64, err error) {
	v, ok := h.(*volumeHandle)
	if !ok {
		return 0, 0, fmt.Errorf("rawdevice: NTFSVolumeData: not a windows volume handle")
	}

	var data ntfsVolumeData
	var bytesReturned uint32
	ioErr := windows.DeviceIoControl(
		v.h,
		fsctlGetNTFSVolumeData,
		nil,
		0,
		(*byte)(unsafe.Pointer(&data)),
		uint32(unsafe.Sizeof(data)),
		&bytesReturned,
		nil,
	)
	if ioErr != nil {
		return 0, 0, fmt.Errorf("DeviceIoControl(FSCTL_GET_NTFS_VOLUME_DATA): %w", ioErr)
	}
	return data.BytesPerFileRecordSegment, data.MftStartLcn, nil
}

// Size reports volume size in bytes via IOCTL_DISK_GET_DRIVE_GEOMETRY.
func (v *volumeHandle) Size() (int64, error) {
	var geometry struct {
		Cylinders         int64
		MediaType         uint32
		TracksPerCylinder uint32
		SectorsPerTrack   uint32
		BytesPerSector    uint32
	}
	var bytesReturned uint32
	const ioctlDiskGetDriveGeometry = 0x70000

	err := windows.DeviceIoControl(
		v.h,
		ioctlDiskGetDriveGeometry,
		nil,
		0,
		(*byte)(unsafe.Pointer(&geometry)),
		uint32(unsafe.Sizeof(geometry)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("DeviceIoControl(IOCTL_DISK_GET_DRIVE_GEOMETRY): %w", err)
	}
	return geometry.Cylinders * int64(geometry.TracksPerCylinder) * int64(geometry.SectorsPerTrack) * int64(geometry.BytesPerSector), nil
}
