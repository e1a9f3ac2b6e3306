package ntfs

import (
	"fmt"
	"log/slog"

	"github.com/ntfsidx/ntfsidx/internal/rawdevice"
)

// clustersPerRead bounds how many clusters MFTLoader reads into its reusable
// stream buffer at a time while following the MFT's own run-list.
const clustersPerRead = 1024

// Progress is a sparse, purely informational callback: done/total count
// whatever unit the caller is currently reporting on (records while
// decoding, clusters while streaming), and label names the phase.
type Progress func(done, total int64, label string)

// noopProgress discards every report; used when the caller passes nil.
func noopProgress(int64, int64, string) {}

// LoadResult is everything MFTLoader+RecordDecoder+ExtensionLinker produce
// for one volume pass.
type LoadResult struct {
	Index *Index
}

// LoadMFT reads MFT entry 0 (the $MFT file's own record) off h using the
// geometry from boot, follows its $DATA run-list to stream every MFT record,
// decodes each one, links base/extension records, and returns the resulting
// Index. Individual corrupt records are skipped; the whole load aborts only
// when the MFT bootstrap record cannot be read or decoded, an unsupported
// $ATTRIBUTE_LIST is found, the run-list cannot be resolved, or a streaming
// read is truncated.
func LoadMFT(h rawdevice.Handle, boot *BootSector, progress Progress, log *slog.Logger) (*LoadResult, error) {
	if progress == nil {
		progress = noopProgress
	}
	if log == nil {
		log = slog.Default()
	}

	// deviceSize bounds every positioned read below against TruncatedRead
	// before it's issued; sizeErr == non-nil (ioctl/stat unsupported on this
	// backing store) just disables the check rather than failing the load.
	deviceSize, sizeErr := h.Size()

	bootstrap := make([]byte, boot.BytesPerFileRecordSegment)
	if err := boundedReadAt(h, bootstrap, boot.MFTStartByte, deviceSize, sizeErr); err != nil {
		return nil, fmt.Errorf("%w: reading MFT bootstrap record: %v", ErrDeviceOpen, err)
	}

	header, err := parseRecordHeader(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("ntfs: MFT bootstrap record: %w", err)
	}
	if header.signature != fileRecordSignature {
		return nil, fmt.Errorf("%w: MFT bootstrap record has no FILE signature", ErrCorruptRecord)
	}
	if err := ApplyFixup(bootstrap, header.usaOffset, header.usaCount); err != nil {
		return nil, fmt.Errorf("ntfs: fixing up MFT bootstrap record: %w", err)
	}

	var dataAttr *Attribute
	sawAttributeList := false
	walkErr := WalkAttributes(bootstrap, header.firstAttributeOffset, func(a Attribute) bool {
		switch a.Type {
		case AttributeAttributeList:
			if dataAttr == nil {
				sawAttributeList = true
			}
		case AttributeData:
			if a.NonResident {
				attr := a
				dataAttr = &attr
				return false
			}
		}
		return true
	})
	if walkErr != nil {
		return nil, fmt.Errorf("ntfs: walking MFT bootstrap attributes: %w", walkErr)
	}
	if dataAttr == nil {
		if sawAttributeList {
			log.Warn("MFT bootstrap record spans an $ATTRIBUTE_LIST; multi-record MFT assembly is not supported")
			return nil, ErrAttributeListUnsupported
		}
		return nil, fmt.Errorf("%w: MFT bootstrap record has no non-resident $DATA", ErrCorruptRecord)
	}

	runs, err := dataAttr.RunList()
	if err != nil {
		return nil, fmt.Errorf("ntfs: decoding MFT run-list: %w", err)
	}

	recordSize := int64(boot.BytesPerFileRecordSegment)
	entryCount := int64(dataAttr.DataSize) / recordSize
	entries := make([]Entry, entryCount)
	arena := newNameArena()
	linker := &ExtensionLinker{}

	totalVCNs := TotalVCNs(runs)
	buf := make([]byte, clustersPerRead*int64(boot.BytesPerCluster))

	var entryIndex int64
	for vcn := int64(0); vcn < totalVCNs && entryIndex < entryCount; {
		run, err := FindRun(runs, vcn)
		if err != nil {
			return nil, fmt.Errorf("ntfs: streaming MFT: %w", err)
		}

		count := run.Count
		if count > clustersPerRead {
			count = clustersPerRead
		}
		chunk := buf[:count*int64(boot.BytesPerCluster)]

		if run.Sparse {
			for i := range chunk {
				chunk[i] = 0
			}
		} else {
			byteOff := run.LCN * int64(boot.BytesPerCluster)
			if err := boundedReadAt(h, chunk, byteOff, deviceSize, sizeErr); err != nil {
				return nil, fmt.Errorf("%w: streaming MFT at LCN %d: %v", ErrTruncatedRead, run.LCN, err)
			}
		}

		for off := int64(0); off+recordSize <= int64(len(chunk)) && entryIndex < entryCount; off += recordSize {
			record := chunk[off : off+recordSize]
			decoded, err := DecodeRecord(record)
			if err != nil {
				log.Debug("skipping record", "entry", entryIndex, "error", err)
				entryIndex++
				continue
			}
			if decoded.Valid {
				entries[entryIndex].Flags = decoded.Flags
				entries[entryIndex].ParentRef = decoded.ParentRef
				if len(decoded.Name) > 0 {
					entries[entryIndex].Name = arena.Store(decoded.Name)
				}
				if decoded.IsExtension {
					linker.Add(decoded.BaseRecord, uint64(entryIndex))
				}
			}
			entryIndex++
			if entryIndex%1000 == 0 {
				progress(entryIndex, entryCount, "decoding MFT records")
			}
		}

		vcn += count
		progress(vcn, totalVCNs, "streaming MFT clusters")
	}

	linker.Resolve(entries)
	progress(entryCount, entryCount, "decoding MFT records")

	return &LoadResult{Index: &Index{Entries: entries, arena: arena}}, nil
}

// boundedReadAt rejects a read that would run past the device's reported
// size before issuing it, catching a truncated/corrupt run-list pointing
// beyond the backing store up front rather than relying on ReadAt's own
// short-read behavior. sizeErr non-nil means Size() isn't supported on this
// handle (some backing stores don't implement the geometry ioctl); the
// bound is simply skipped in that case and ReadAt's own error is trusted.
func boundedReadAt(h rawdevice.Handle, p []byte, off, deviceSize int64, sizeErr error) error {
	if sizeErr == nil && off+int64(len(p)) > deviceSize {
		return fmt.Errorf("read of %d bytes at %d exceeds device size %d", len(p), off, deviceSize)
	}
	n, err := h.ReadAt(p, off)
	if err != nil && int64(n) < int64(len(p)) {
		return err
	}
	return nil
}
