//go:build !windows

package rawdevice

import "fmt"

// Open always fails on non-Windows platforms: drive-letter volumes are a
// Windows concept, so there is nothing meaningful to open.
func Open(path string) (Handle, error) {
	return nil, fmt.Errorf("%w: %s: %v", ErrDeviceOpen, path, ErrUnsupportedPlatform)
}

// NTFSVolumeData is never reachable on this platform since Open always
// fails first, but is kept for symmetry with the windows build.
func NTFSVolumeData(h Handle) (bytesPerFileRecordSegment uint32, mftStartLCN int64, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
