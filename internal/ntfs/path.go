package ntfs

const maxPathDepth = 64

// rootEntry and zeroEntry bound the parent walk: entry 5 is the volume
// root, entry 0 is the $MFT file itself and never a real parent.
const (
	zeroEntry uint64 = 0
	rootEntry uint64 = 5
)

// BuildPath walks parent_ref from entry id's parent up to the volume root (or
// until depth overflow / a cycle truncates the walk at 64 levels), returning
// the directory path "X:\a\b\c\" as UTF-16 code units — the leaf name itself
// is never appended; the caller concatenates it separately. driveLetter is 0
// to omit the "X:" prefix. Kept in UTF-16 throughout (never converted to a Go
// string here) since wide/narrow conversion is the CLI layer's concern, not
// the decoder's.
func BuildPath(entries []Entry, id uint64, driveLetter byte) []uint16 {
	var stack [maxPathDepth]uint64
	depth := 0

	var cur uint64 = zeroEntry
	if id < uint64(len(entries)) {
		cur = entries[id].ParentRef
	}
	for depth < maxPathDepth {
		if cur == zeroEntry || cur == rootEntry || cur >= uint64(len(entries)) {
			break
		}
		parent := entries[cur].ParentRef
		stack[depth] = cur
		depth++
		cur = parent
	}

	var b []uint16
	if driveLetter != 0 {
		b = append(b, uint16(driveLetter), ':')
	}
	for i := depth - 1; i >= 0; i-- {
		b = append(b, '\\')
		b = append(b, entries[stack[i]].Name...)
	}
	b = append(b, '\\')
	return b
}
