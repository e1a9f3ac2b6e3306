package ntfs_test

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
)

func name16(s string) []uint16 { return utf16.Encode([]rune(s)) }

func TestBuildPath_SkipsTheEntryItself(t *testing.T) {
	// 5 = root, 3 = "docs" (parent 5), 7 = "report.docx" (parent 3).
	entries := make([]ntfs.Entry, 8)
	entries[3] = ntfs.Entry{Name: name16("docs"), ParentRef: 5}
	entries[7] = ntfs.Entry{Name: name16("report.docx"), ParentRef: 3}

	path := ntfs.BuildPath(entries, 7, 'C')
	require.Equal(t, `C:\docs\`, string(utf16.Decode(path)))
}

func TestBuildPath_RootChild(t *testing.T) {
	entries := make([]ntfs.Entry, 8)
	entries[3] = ntfs.Entry{Name: name16("docs"), ParentRef: 5}

	path := ntfs.BuildPath(entries, 3, 'C')
	require.Equal(t, `C:\`, string(utf16.Decode(path)))
}

func TestBuildPath_NoDriveLetter(t *testing.T) {
	entries := make([]ntfs.Entry, 8)
	entries[3] = ntfs.Entry{Name: name16("docs"), ParentRef: 5}
	entries[7] = ntfs.Entry{Name: name16("report.docx"), ParentRef: 3}

	path := ntfs.BuildPath(entries, 7, 0)
	require.Equal(t, `\docs\`, string(utf16.Decode(path)))
}

func TestBuildPath_CycleTruncatesAtMaxDepth(t *testing.T) {
	entries := make([]ntfs.Entry, 4)
	// 1 -> 2 -> 1 -> 2 ... a cycle that never reaches root or zero.
	entries[1] = ntfs.Entry{Name: name16("a"), ParentRef: 2}
	entries[2] = ntfs.Entry{Name: name16("b"), ParentRef: 1}

	require.NotPanics(t, func() {
		ntfs.BuildPath(entries, 1, 'C')
	})
}
