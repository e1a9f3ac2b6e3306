package diskindex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/pkg/diskindex"
)

func TestDriveBit(t *testing.T) {
	require.Equal(t, diskindex.Bitmask32(1), diskindex.DriveBit('A'))
	require.Equal(t, diskindex.Bitmask32(1<<2), diskindex.DriveBit('C'))
	require.Equal(t, diskindex.DriveBit('C'), diskindex.DriveBit('c'))
}

func TestManager_EmptyByDefault(t *testing.T) {
	mgr := diskindex.New(nil, nil)
	require.Equal(t, diskindex.Bitmask32(0), mgr.OpenMask())

	hits := mgr.EnumerateFiles(diskindex.DriveBit('C'), false, func([]uint16, []uint16) {})
	require.Equal(t, 0, hits, "no volumes open, no hits regardless of mask")
}

func TestManager_SetAndClearBlacklist(t *testing.T) {
	mgr := diskindex.New(nil, nil)
	require.NotPanics(t, func() {
		mgr.SetBlacklist([]string{`C:\Windows\`})
		mgr.ClearBlacklist()
	})
}

func TestManager_CloseIsIdempotentWhenEmpty(t *testing.T) {
	mgr := diskindex.New(nil, nil)
	require.NotPanics(t, func() {
		mgr.Close()
		mgr.Close()
	})
}
