package ntfs

// Entry is one decoded MFT slot. Name is a borrow into the volume's name
// arena, not an owned copy — see nameArena.
type Entry struct {
	Flags     RecordFlag
	Name      []uint16
	ParentRef uint64
}

func (e *Entry) InUse() bool       { return e.Flags.Is(RecordInUse) }
func (e *Entry) IsDirectory() bool { return e.Flags.Is(RecordIsDirectory) }
func (e *Entry) HasName() bool     { return len(e.Name) > 0 }

// Index is the per-volume, dense, MFT-entry-ordered decode result. Built
// once by MFTLoader+RecordDecoder+ExtensionLinker, then read-only for the
// lifetime of the volume (until Reload replaces it wholesale).
type Index struct {
	Entries []Entry
	arena   *nameArena
}

// EntryCount returns the number of decoded slots, equal to MFT data size /
// bytes-per-file-record.
func (ix *Index) EntryCount() int { return len(ix.Entries) }
