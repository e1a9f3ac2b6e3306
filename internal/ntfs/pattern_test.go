package ntfs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
)

func TestCompilePattern_Modes(t *testing.T) {
	cases := []struct {
		expr string
		mode ntfs.PatternMode
	}{
		{"report.docx", ntfs.ModeExact},
		{"report*", ntfs.ModePrefix},
		{"*.docx", ntfs.ModeSuffix},
		{"*report*", ntfs.ModeSubstring},
		{"report*.docx", ntfs.ModePrefixAndSuffix},
	}
	for _, c := range cases {
		p, ok := ntfs.CompilePattern(c.expr, false)
		require.True(t, ok, c.expr)
		require.Equal(t, c.mode, p.Mode, c.expr)
	}
}

func TestCompilePattern_RejectsTooShort(t *testing.T) {
	_, ok := ntfs.CompilePattern("", false)
	require.False(t, ok)

	_, ok = ntfs.CompilePattern("*", false)
	require.False(t, ok)
}

func TestPattern_MatchCaseInsensitiveByDefault(t *testing.T) {
	p, ok := ntfs.CompilePattern("*.DOCX", false)
	require.True(t, ok)
	require.True(t, p.Match("report.docx"))
	require.True(t, p.Match("REPORT.DOCX"))
}

func TestPattern_MatchCaseSensitive(t *testing.T) {
	p, ok := ntfs.CompilePattern("Report*", true)
	require.True(t, ok)
	require.True(t, p.Match("Report.docx"))
	require.False(t, p.Match("report.docx"))
}

func TestPattern_PrefixAndSuffixGuardsOverlap(t *testing.T) {
	p, ok := ntfs.CompilePattern("abc*xyz", false)
	require.True(t, ok)
	require.False(t, p.Match("abxyz")) // too short for both fragments to fit without overlap
	require.True(t, p.Match("abcXXXxyz"))
}
