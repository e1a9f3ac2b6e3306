package ntfs

import (
	"fmt"
	"log/slog"

	"github.com/ntfsidx/ntfsidx/internal/rawdevice"
)

// Volume is one opened, decoded NTFS volume: a raw handle plus the boot
// sector geometry and the decoded index. Non-owning consumers are expected
// to hold a drive-letter/slot identifier, never this struct directly — see
// pkg/diskindex.Manager.
type Volume struct {
	Drive byte // 'A'..'Z'
	Boot  *BootSector
	Index *Index

	handle rawdevice.Handle
	log    *slog.Logger
}

// OpenVolume opens drive, decodes its boot sector, and loads its MFT into an
// Index. On any failure the handle is closed before returning.
func OpenVolume(drive byte, progress Progress, log *slog.Logger) (*Volume, error) {
	h, err := rawdevice.Open(rawdevice.DrivePath(drive))
	if err != nil {
		return nil, fmt.Errorf("%w: drive %c: %v", ErrDeviceOpen, drive, err)
	}

	boot, err := DecodeBootSector(h)
	if err != nil {
		h.Close()
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}
	volLog := log.With(slog.Group("volume", "drive", string(drive), "serial", boot.VolumeSerialNumber))

	result, err := LoadMFT(h, boot, progress, volLog)
	if err != nil {
		h.Close()
		return nil, err
	}

	return &Volume{Drive: drive, Boot: boot, Index: result.Index, handle: h, log: volLog}, nil
}

// Reload re-decodes this volume's MFT in place, discarding the previous
// Index (and its name arena) but keeping the device handle open, mirroring
// the original "reparse" behavior of releasing only the decoded state.
func (v *Volume) Reload(progress Progress) error {
	result, err := LoadMFT(v.handle, v.Boot, progress, v.log)
	if err != nil {
		return err
	}
	v.Index = result.Index
	return nil
}

// Close releases the device handle. The Index remains valid (it owns its own
// arena) but will never be refreshed again through this Volume.
func (v *Volume) Close() error {
	return v.handle.Close()
}
