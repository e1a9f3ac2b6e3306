package ntfs

// basePair records one base/extension relationship discovered while
// streaming the MFT: record Ext's base_file_record_segment pointed at Base.
// A plain growable slice — per the design notes, no linked-list shape is
// required by the contract.
type basePair struct {
	Base uint64
	Ext  uint64
}

// ExtensionLinker accumulates (base, ext) pairs during the streaming pass and
// resolves them afterward, once every record has been decoded.
type ExtensionLinker struct {
	pairs []basePair
}

// Add registers one base/extension relationship, observed while decoding
// the extension record (its base_file_record_segment is non-zero).
func (l *ExtensionLinker) Add(base, ext uint64) {
	l.pairs = append(l.pairs, basePair{Base: base, Ext: ext})
}

// Resolve copies each extension record's primary name/parent onto its base
// record, then zeroes the extension's own parent_ref so it stops being a
// path-walk target. Must run after every record in entries has been
// decoded — during streaming, a pair's base record may not exist yet.
func (l *ExtensionLinker) Resolve(entries []Entry) {
	for _, p := range l.pairs {
		if p.Base >= uint64(len(entries)) || p.Ext >= uint64(len(entries)) {
			continue
		}
		base := &entries[p.Base]
		ext := &entries[p.Ext]

		base.Name = ext.Name
		base.ParentRef = ext.ParentRef
		ext.ParentRef = 0
	}
}
