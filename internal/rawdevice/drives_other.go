//go:build !windows

package rawdevice

// FixedDrives reports no fixed drives on platforms without the drive-letter
// concept; Manager.Open simply opens nothing and every bit comes back unset.
func FixedDrives() uint32 {
	return 0
}
