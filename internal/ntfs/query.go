package ntfs

import (
	"strings"
	"unicode/utf16"
)

// Sink receives one query hit: the directory path and the leaf file name,
// both UTF-16, per the external-interface contract. Concatenating path and
// fileName yields the full path.
type Sink func(path []uint16, fileName []uint16)

// nameString decodes an entry's UTF-16 name to a Go string for matching
// purposes (extension/pattern comparison); the sink callback still receives
// the original UTF-16 code units untouched.
func nameString(name []uint16) string {
	return string(utf16.Decode(name))
}

func extOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// QueryExtensions emits every in-use (or, if includeDeleted, every) non-directory
// entry whose name's lowercased extension is in exts, skipping blacklisted
// paths. Returns the total hit count.
func QueryExtensions(entries []Entry, driveLetter byte, exts map[string]struct{}, includeDeleted bool, bl *Blacklist, sink Sink) int {
	hits := 0
	for i := range entries {
		e := &entries[i]
		if !e.HasName() || e.IsDirectory() {
			continue
		}
		if !includeDeleted && !e.InUse() {
			continue
		}
		name := nameString(e.Name)
		if _, ok := exts[extOf(name)]; !ok {
			continue
		}
		path := BuildPath(entries, uint64(i), driveLetter)
		if bl.Blocked(nameString(path)) {
			continue
		}
		sink(path, e.Name)
		hits++
	}
	return hits
}

// QueryPattern emits every in-use (or, if includeDeleted, every) entry whose
// name matches the compiled pattern, skipping blacklisted paths.
func QueryPattern(entries []Entry, driveLetter byte, pattern Pattern, includeDeleted bool, bl *Blacklist, sink Sink) int {
	hits := 0
	for i := range entries {
		e := &entries[i]
		if !e.HasName() {
			continue
		}
		if !includeDeleted && !e.InUse() {
			continue
		}
		if !pattern.Match(nameString(e.Name)) {
			continue
		}
		path := BuildPath(entries, uint64(i), driveLetter)
		if bl.Blocked(nameString(path)) {
			continue
		}
		sink(path, e.Name)
		hits++
	}
	return hits
}

// EnumerateMode selects which kinds of entries Enumerate reports.
type EnumerateMode int

const (
	EnumerateFiles EnumerateMode = iota
	EnumerateDirectories
	EnumerateAll
)

// Enumerate emits every entry matching mode, skipping "." and ".." when
// enumerating directories and skipping blacklisted paths.
func Enumerate(entries []Entry, driveLetter byte, mode EnumerateMode, includeDeleted bool, bl *Blacklist, sink Sink) int {
	hits := 0
	for i := range entries {
		e := &entries[i]
		if !e.HasName() {
			continue
		}
		if !includeDeleted && !e.InUse() {
			continue
		}
		switch mode {
		case EnumerateFiles:
			if e.IsDirectory() {
				continue
			}
		case EnumerateDirectories:
			if !e.IsDirectory() {
				continue
			}
			name := nameString(e.Name)
			if name == "." || name == ".." {
				continue
			}
		}
		path := BuildPath(entries, uint64(i), driveLetter)
		if bl.Blocked(nameString(path)) {
			continue
		}
		sink(path, e.Name)
		hits++
	}
	return hits
}
