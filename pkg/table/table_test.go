package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/pkg/table"
)

func TestPrefixTable_WalkMatchesStoredPrefixes(t *testing.T) {
	tbl := table.New[int]()
	tbl.Insert([]byte("apple"), 1)
	tbl.Insert([]byte("applet"), 2)
	tbl.Insert([]byte("apricot"), 3)

	var matched []int
	tbl.Walk([]byte("appletie"), func(v int) bool {
		matched = append(matched, v)
		return false
	})
	require.Equal(t, []int{1, 2}, matched)

	matched = nil
	tbl.Walk([]byte("application"), func(v int) bool {
		matched = append(matched, v)
		return false
	})
	require.Empty(t, matched)
}

func TestPrefixTable_Clear(t *testing.T) {
	tbl := table.New[int]()
	tbl.Insert([]byte("x"), 1)
	require.Equal(t, 1, tbl.Size())

	tbl.Clear()
	require.Equal(t, 0, tbl.Size())

	var matched bool
	tbl.Walk([]byte("x"), func(int) bool {
		matched = true
		return true
	})
	require.False(t, matched)
}
