package ntfs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// emptyMFTHandle serves a single MFT bootstrap record whose $DATA run-list
// is empty, yielding a zero-entry Index — enough to exercise Reload/Close
// without needing a real device or a populated MFT stream.
type emptyMFTHandle struct {
	bootstrap []byte
	closed    bool
}

func (h *emptyMFTHandle) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, h.bootstrap[off:]), nil
}

func (h *emptyMFTHandle) Close() error {
	h.closed = true
	return nil
}

func (h *emptyMFTHandle) Size() (int64, error) { return int64(len(h.bootstrap)), nil }

func buildEmptyMFTBootstrap(recordSize int) []byte {
	const usaOffset = 0x30
	const firstAttrOffset = 64
	const runArrayOffset = 0x40

	attr := make([]byte, runArrayOffset+1) // run-list: single zero terminator byte
	binary.LittleEndian.PutUint32(attr[0:4], uint32(AttributeData))
	binary.LittleEndian.PutUint32(attr[4:8], uint32(len(attr)))
	attr[8] = 1 // non-resident
	binary.LittleEndian.PutUint16(attr[0x20:0x22], runArrayOffset)
	// DataSize, AllocatedSize, InitializedSize all left zero.

	stream := append(append([]byte{}, attr...), 0xFF, 0xFF, 0xFF, 0xFF)

	record := make([]byte, recordSize)
	copy(record[0:4], "FILE")
	binary.LittleEndian.PutUint16(record[4:6], usaOffset)
	binary.LittleEndian.PutUint16(record[6:8], 1) // usaCount
	binary.LittleEndian.PutUint16(record[0x14:0x16], firstAttrOffset)
	binary.LittleEndian.PutUint16(record[0x16:0x18], uint16(RecordInUse))
	copy(record[firstAttrOffset:], stream)
	return record
}

func TestVolume_ReloadReplacesIndex(t *testing.T) {
	const recordSize = 1024
	h := &emptyMFTHandle{bootstrap: buildEmptyMFTBootstrap(recordSize)}
	boot := &BootSector{BytesPerCluster: 4096, BytesPerFileRecordSegment: recordSize, MFTStartByte: 0}

	v := &Volume{Drive: 'C', Boot: boot, handle: h}
	require.NoError(t, v.Reload(nil))
	require.NotNil(t, v.Index)
	require.Empty(t, v.Index.Entries)

	firstIndex := v.Index
	require.NoError(t, v.Reload(nil))
	require.NotSame(t, firstIndex, v.Index)
}

func TestVolume_CloseClosesHandle(t *testing.T) {
	h := &emptyMFTHandle{bootstrap: buildEmptyMFTBootstrap(1024)}
	v := &Volume{Drive: 'C', handle: h}
	require.NoError(t, v.Close())
	require.True(t, h.closed)
}
