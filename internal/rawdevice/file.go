// Package rawdevice opens an NTFS volume as a raw, positioned-read block
// handle, bypassing the host filesystem driver.
package rawdevice

import "io"

// Handle is a read-only, positioned-read block device. Implementations must
// support concurrent-free, exclusive use by a single decoding pipeline; the
// package makes no attempt at its own locking.
type Handle interface {
	io.ReaderAt
	io.Closer

	// Size reports the device's addressable byte length, as reported by the
	// host OS. Used to bound MFT streaming reads against TruncatedRead.
	Size() (int64, error)
}

// DrivePath builds the Win32 raw-device path for a drive letter, e.g. 'C' ->
// `\\.\C:`. Letters are case-insensitive; lowercase is upper-cased.
func DrivePath(letter byte) string {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return `\\.\` + string(letter) + `:`
}
