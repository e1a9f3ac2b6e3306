package ntfs

import (
	"strings"

	"github.com/ntfsidx/ntfsidx/pkg/table"
)

// Blacklist is a set of absolute path prefixes, backed by the same
// hashed prefix table this codebase uses for signature lookups elsewhere.
// A candidate path is blacklisted if it case-insensitively starts with any
// stored prefix.
type Blacklist struct {
	prefixes *table.PrefixTable[struct{}]
}

// NewBlacklist builds a blacklist from a set of absolute path prefixes.
// Entries are lowercased at insert time so matching is case-insensitive.
func NewBlacklist(prefixes []string) *Blacklist {
	bl := &Blacklist{prefixes: table.New[struct{}]()}
	for _, p := range prefixes {
		bl.prefixes.Insert([]byte(strings.ToLower(p)), struct{}{})
	}
	return bl
}

// Clear empties the blacklist in place.
func (b *Blacklist) Clear() {
	b.prefixes.Clear()
}

// Blocked reports whether path starts with any blacklisted prefix,
// case-insensitively.
func (b *Blacklist) Blocked(path string) bool {
	if b == nil || b.prefixes.Size() == 0 {
		return false
	}
	lower := []byte(strings.ToLower(path))
	blocked := false
	b.prefixes.Walk(lower, func(struct{}) bool {
		blocked = true
		return true
	})
	return blocked
}
