package ntfs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
)

func TestFSType_String(t *testing.T) {
	require.Equal(t, "NTFS", ntfs.NTFS.String())
	require.Equal(t, "FAT32", ntfs.FAT32.String())
	require.Equal(t, "unknown", ntfs.Unknown.String())
	require.Equal(t, "unknown", ntfs.FSType(99).String())
}
