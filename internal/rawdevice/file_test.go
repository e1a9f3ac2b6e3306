package rawdevice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/rawdevice"
)

func TestDrivePath(t *testing.T) {
	require.Equal(t, `\\.\C:`, rawdevice.DrivePath('C'))
	require.Equal(t, `\\.\C:`, rawdevice.DrivePath('c'))
	require.Equal(t, `\\.\Z:`, rawdevice.DrivePath('z'))
}
