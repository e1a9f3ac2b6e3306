package ntfs

import "strings"

// PatternMode is the compiled shape of a single-`*` glob.
type PatternMode int

const (
	ModeExact PatternMode = iota
	ModePrefix
	ModeSuffix
	ModeSubstring
	ModePrefixAndSuffix
)

// Pattern is a compiled glob: at most one `*` metacharacter, split into one
// or two literal fragments per PatternMode.
type Pattern struct {
	Mode          PatternMode
	Prefix        string
	Suffix        string
	CaseSensitive bool
}

// CompilePattern parses a glob literal into a Pattern. Returns ok=false for
// an empty string or a string of length ≤ 1 — per the matcher contract,
// those are rejected outright rather than compiled into a degenerate
// matcher, so the caller's query returns 0 hits.
func CompilePattern(expr string, caseSensitive bool) (Pattern, bool) {
	if len(expr) <= 1 {
		return Pattern{}, false
	}
	if !caseSensitive {
		expr = strings.ToLower(expr)
	}

	star := strings.IndexByte(expr, '*')
	startsStar := star == 0
	endsStar := expr[len(expr)-1] == '*'

	p := Pattern{CaseSensitive: caseSensitive}
	switch {
	case star == -1:
		p.Mode = ModeExact
		p.Prefix = expr
	case startsStar && endsStar:
		p.Mode = ModeSubstring
		p.Prefix = expr[1 : len(expr)-1]
	case startsStar:
		p.Mode = ModeSuffix
		p.Suffix = expr[1:]
	case endsStar:
		p.Mode = ModePrefix
		p.Prefix = expr[:len(expr)-1]
	default:
		p.Mode = ModePrefixAndSuffix
		p.Prefix = expr[:star]
		p.Suffix = expr[star+1:]
	}
	return p, true
}

// Match applies the compiled pattern to a candidate name.
func (p Pattern) Match(name string) bool {
	if !p.CaseSensitive {
		name = strings.ToLower(name)
	}
	switch p.Mode {
	case ModeExact:
		return name == p.Prefix
	case ModePrefix:
		return strings.HasPrefix(name, p.Prefix)
	case ModeSuffix:
		return strings.HasSuffix(name, p.Suffix)
	case ModeSubstring:
		return strings.Contains(name, p.Prefix)
	case ModePrefixAndSuffix:
		return len(p.Prefix)+len(p.Suffix) <= len(name) &&
			strings.HasPrefix(name, p.Prefix) && strings.HasSuffix(name, p.Suffix)
	default:
		return false
	}
}
