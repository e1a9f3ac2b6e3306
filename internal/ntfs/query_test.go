package ntfs_test

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
)

func TestQueryExtensions_SingleRecordFile(t *testing.T) {
	entries := make([]ntfs.Entry, 7)
	entries[6] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("hello.txt"), ParentRef: 5}

	var gotPath, gotName string
	hits := ntfs.QueryExtensions(entries, 'X', map[string]struct{}{"txt": {}}, false, nil, func(path, name []uint16) {
		gotPath = string(utf16.Decode(path))
		gotName = string(utf16.Decode(name))
	})

	require.Equal(t, 1, hits)
	require.Equal(t, `X:\`, gotPath)
	require.Equal(t, "hello.txt", gotName)
}

func TestEnumerate_NestedDirectories(t *testing.T) {
	entries := make([]ntfs.Entry, 9)
	entries[6] = ntfs.Entry{Flags: ntfs.RecordInUse | ntfs.RecordIsDirectory, Name: name16("a"), ParentRef: 5}
	entries[7] = ntfs.Entry{Flags: ntfs.RecordInUse | ntfs.RecordIsDirectory, Name: name16("b"), ParentRef: 6}
	entries[8] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("c.jpg"), ParentRef: 7}

	var filePaths []string
	fileHits := ntfs.Enumerate(entries, 'X', ntfs.EnumerateFiles, false, nil, func(path, name []uint16) {
		filePaths = append(filePaths, string(utf16.Decode(path))+string(utf16.Decode(name)))
	})
	require.Equal(t, 1, fileHits)
	require.Equal(t, []string{`X:\a\b\c.jpg`}, filePaths)

	dirHits := ntfs.Enumerate(entries, 'X', ntfs.EnumerateDirectories, false, nil, func([]uint16, []uint16) {})
	require.Equal(t, 2, dirHits)
}

func TestQueryExtensions_RespectsBlacklist(t *testing.T) {
	entries := make([]ntfs.Entry, 10)
	entries[6] = ntfs.Entry{Flags: ntfs.RecordInUse | ntfs.RecordIsDirectory, Name: name16("WINDOWS"), ParentRef: 5}
	entries[7] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("a.txt"), ParentRef: 6}
	entries[8] = ntfs.Entry{Flags: ntfs.RecordInUse | ntfs.RecordIsDirectory, Name: name16("Users"), ParentRef: 5}
	entries[9] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("b.txt"), ParentRef: 8}

	bl := ntfs.NewBlacklist([]string{`X:\WINDOWS\`})

	var hitNames []string
	hits := ntfs.QueryExtensions(entries, 'X', map[string]struct{}{"txt": {}}, false, bl, func(path, name []uint16) {
		hitNames = append(hitNames, string(utf16.Decode(name)))
	})

	require.Equal(t, 1, hits)
	require.Equal(t, []string{"b.txt"}, hitNames)
}

func TestQueryExtensions_IncludeDeleted(t *testing.T) {
	entries := make([]ntfs.Entry, 7)
	entries[6] = ntfs.Entry{Flags: 0, Name: name16("gone.txt"), ParentRef: 5} // not in-use

	hits := ntfs.QueryExtensions(entries, 'X', map[string]struct{}{"txt": {}}, false, nil, func([]uint16, []uint16) {})
	require.Equal(t, 0, hits)

	hits = ntfs.QueryExtensions(entries, 'X', map[string]struct{}{"txt": {}}, true, nil, func([]uint16, []uint16) {})
	require.Equal(t, 1, hits)
}

func TestQueryPattern_ExactMode(t *testing.T) {
	entries := make([]ntfs.Entry, 8)
	entries[6] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("report.docx"), ParentRef: 5}
	entries[7] = ntfs.Entry{Flags: ntfs.RecordInUse, Name: name16("report.docx.bak"), ParentRef: 5}

	p, ok := ntfs.CompilePattern("report.docx", false)
	require.True(t, ok)

	hits := ntfs.QueryPattern(entries, 'X', p, false, nil, func([]uint16, []uint16) {})
	require.Equal(t, 1, hits)
}
