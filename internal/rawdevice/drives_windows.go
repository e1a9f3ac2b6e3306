//go:build windows

package rawdevice

import "golang.org/x/sys/windows"

// FixedDrives returns a bitmask (bit i ↔ letter 'A'+i) of drive letters the
// host OS reports as both present and of fixed (non-removable, non-network,
// non-CD) type. Drives that exist but aren't fixed are silently excluded,
// per the external-interface contract: "only drives reported as fixed by the
// host OS are opened; others are skipped silently."
func FixedDrives() uint32 {
	present := windows.GetLogicalDrives()

	var fixed uint32
	for i := 0; i < 26; i++ {
		if present&(1<<uint(i)) == 0 {
			continue
		}
		letter := byte('A' + i)
		root := string(letter) + `:\`
		rootPtr, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		if windows.GetDriveType(rootPtr) == windows.DRIVE_FIXED {
			fixed |= 1 << uint(i)
		}
	}
	return fixed
}
