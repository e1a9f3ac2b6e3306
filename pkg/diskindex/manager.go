// Package diskindex is the external interface onto the NTFS decoder: a
// 32-slot table of drive-letter volumes, opened/closed/reloaded as a batch,
// queried by extension, pattern, or full enumeration.
package diskindex

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"

	"github.com/ntfsidx/ntfsidx/internal/ntfs"
	"github.com/ntfsidx/ntfsidx/internal/rawdevice"
)

// Bitmask32 is a bitmask of drive letters: bit i ↔ letter 'A'+i.
type Bitmask32 uint32

// DriveBit returns the Bitmask32 bit for a single drive letter.
func DriveBit(letter byte) Bitmask32 {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return 1 << uint(letter-'A')
}

func (m Bitmask32) has(i int) bool { return m&(1<<uint(i)) != 0 }

// Manager owns up to 32 opened volumes, one per drive letter, plus the
// shared blacklist applied to every query.
type Manager struct {
	mu        sync.RWMutex
	volumes   [32]*ntfs.Volume
	opened    bitmap.Bitmap
	blacklist *ntfs.Blacklist
	log       *slog.Logger
	progress  ntfs.Progress
}

// New creates an empty Manager. log and progress may be nil.
func New(log *slog.Logger, progress ntfs.Progress) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		opened:    bitmap.New(32),
		blacklist: ntfs.NewBlacklist(nil),
		log:       log,
		progress:  progress,
	}
}

// Open opens every drive named in drives that the host OS reports as both
// present and fixed; others are skipped silently, per the external
// interface contract. Returns the mask of drives actually opened and an
// aggregate of every per-drive failure (nil if every requested, fixed drive
// opened cleanly).
func (m *Manager) Open(drives Bitmask32) (Bitmask32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fixed := Bitmask32(rawdevice.FixedDrives())
	var errs *multierror.Error
	var opened Bitmask32

	for i := 0; i < 32; i++ {
		if !drives.has(i) {
			continue
		}
		letter := byte('A' + i)
		if i >= 26 || !fixed.has(i) {
			m.log.Debug("skipping non-fixed drive", "drive", string(letter))
			continue
		}

		vol, err := ntfs.OpenVolume(letter, m.progress, m.log)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("drive %c: %w", letter, err))
			continue
		}

		m.volumes[i] = vol
		m.opened.Set(i, true)
		opened |= 1 << uint(i)
	}

	if errs != nil {
		return opened, errs.ErrorOrNil()
	}
	return opened, nil
}

// Close releases every opened volume.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, v := range m.volumes {
		if v == nil {
			continue
		}
		if err := v.Close(); err != nil {
			m.log.Warn("closing volume", "drive", string(v.Drive), "error", err)
		}
		m.volumes[i] = nil
		m.opened.Set(i, false)
	}
}

// Reload forces re-decode of every already-open volume named in drives.
func (m *Manager) Reload(drives Bitmask32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs *multierror.Error
	for i := 0; i < 32; i++ {
		if !drives.has(i) || m.volumes[i] == nil {
			continue
		}
		if err := m.volumes[i].Reload(m.progress); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("drive %c: %w", 'A'+i, err))
		}
	}
	return errs.ErrorOrNil()
}

// SetBlacklist replaces the shared blacklist with prefixes.
func (m *Manager) SetBlacklist(prefixes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist = ntfs.NewBlacklist(prefixes)
}

// ClearBlacklist empties the shared blacklist.
func (m *Manager) ClearBlacklist() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist.Clear()
}

func (m *Manager) eachOpenVolume(drives Bitmask32, fn func(*ntfs.Volume)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := 0; i < 32; i++ {
		if !drives.has(i) || m.volumes[i] == nil {
			continue
		}
		fn(m.volumes[i])
	}
}

// QueryExtensions runs an extension query across every open volume named in
// drives, returning the total hit count across all of them.
func (m *Manager) QueryExtensions(drives Bitmask32, exts []string, includeDeleted bool, sink ntfs.Sink) int {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[e] = struct{}{}
	}

	total := 0
	m.eachOpenVolume(drives, func(v *ntfs.Volume) {
		total += ntfs.QueryExtensions(v.Index.Entries, v.Drive, set, includeDeleted, m.blacklist, sink)
	})
	return total
}

// QueryPattern runs a pattern query across every open volume named in
// drives. Returns 0 with no error if pattern fails to compile, per the
// matcher contract ("matcher not built; query returns 0 hits").
func (m *Manager) QueryPattern(drives Bitmask32, pattern string, caseSensitive, includeDeleted bool, sink ntfs.Sink) int {
	compiled, ok := ntfs.CompilePattern(pattern, caseSensitive)
	if !ok {
		return 0
	}

	total := 0
	m.eachOpenVolume(drives, func(v *ntfs.Volume) {
		total += ntfs.QueryPattern(v.Index.Entries, v.Drive, compiled, includeDeleted, m.blacklist, sink)
	})
	return total
}

// EnumerateFiles lists every file (non-directory) entry across drives.
func (m *Manager) EnumerateFiles(drives Bitmask32, includeDeleted bool, sink ntfs.Sink) int {
	return m.enumerate(drives, ntfs.EnumerateFiles, includeDeleted, sink)
}

// EnumerateDirectories lists every directory entry across drives.
func (m *Manager) EnumerateDirectories(drives Bitmask32, includeDeleted bool, sink ntfs.Sink) int {
	return m.enumerate(drives, ntfs.EnumerateDirectories, includeDeleted, sink)
}

func (m *Manager) enumerate(drives Bitmask32, mode ntfs.EnumerateMode, includeDeleted bool, sink ntfs.Sink) int {
	total := 0
	m.eachOpenVolume(drives, func(v *ntfs.Volume) {
		total += ntfs.Enumerate(v.Index.Entries, v.Drive, mode, includeDeleted, m.blacklist, sink)
	})
	return total
}

// OpenMask returns the mask of drives currently open.
func (m *Manager) OpenMask() Bitmask32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var mask Bitmask32
	for i := 0; i < 32; i++ {
		if m.opened.Get(i) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
