package ntfs

import "errors"

// Error kinds per the decoder's error-handling design: each is a distinct
// sentinel so callers can branch with errors.Is regardless of how many
// layers of fmt.Errorf("...: %w", ...) wrap it.
var (
	// ErrDeviceOpen means RawDevice could not obtain a handle at all; the
	// volume is marked unopened.
	ErrDeviceOpen = errors.New("ntfs: device open failed")

	// ErrNotNTFS means BootSectorDecoder's OEM/signature check failed; the
	// volume is tagged Unknown and skipped by queries.
	ErrNotNTFS = errors.New("ntfs: not an NTFS volume")

	// ErrCorruptRecord means RecordFixup or AttributeWalker rejected a
	// single record. The pass continues; only that record is skipped.
	ErrCorruptRecord = errors.New("ntfs: corrupt record")

	// ErrVCNOutOfRange means RunListDecoder was asked to resolve a VCN
	// outside every run's range. MFT load aborts; the volume is unusable
	// this pass.
	ErrVCNOutOfRange = errors.New("ntfs: VCN out of range")

	// ErrAttributeListUnsupported means MFTLoader found $ATTRIBUTE_LIST
	// before $DATA while bootstrapping the MFT's own record. The volume is
	// tagged unreadable; queries against it report zero hits.
	ErrAttributeListUnsupported = errors.New("ntfs: $ATTRIBUTE_LIST-based MFT bootstrap is not supported")

	// ErrTruncatedRead means a positioned read of MFT clusters would run
	// past the device's reported size, or came back short. The load aborts
	// and the volume is unusable; a short read is not accepted even when
	// the bytes it did return cover the MFT's declared dataSize.
	ErrTruncatedRead = errors.New("ntfs: truncated read")
)
