package rawdevice

import "errors"

// ErrDeviceOpen is returned when a volume handle cannot be obtained at all
// (permission denied, no such drive, device busy). Wrapped with the
// offending path/letter by the caller.
var ErrDeviceOpen = errors.New("rawdevice: failed to open device")

// ErrUnsupportedPlatform is wrapped into ErrDeviceOpen on platforms with no
// drive-letter concept (anything but Windows).
var ErrUnsupportedPlatform = errors.New("rawdevice: drive-letter volumes are not supported on this platform")

// ErrTruncatedRead is returned when a positioned read fails or returns fewer
// bytes than requested.
var ErrTruncatedRead = errors.New("rawdevice: truncated read")
