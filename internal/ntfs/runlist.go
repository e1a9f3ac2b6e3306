package ntfs

import "fmt"

// Run is one decoded element of an NTFS data-run list: count clusters
// starting at LCN, relative to the file's VCN space at [VCNBase,
// VCNBase+Count). LCN is 0 and Sparse is true for runs with no backing
// clusters.
type Run struct {
	VCNBase int64
	Count   int64
	LCN     int64
	Sparse  bool
}

// DecodeRunList parses an NTFS run-list: a sequence of variable-length runs
// terminated by a zero header byte. Each header byte packs two nibbles: low
// nibble = number of bytes in the following length field, high nibble =
// number of bytes in the following (signed, cumulative) offset field.
func DecodeRunList(data []byte) ([]Run, error) {
	var runs []Run
	var vcn, lcn int64
	i := 0
	for i < len(data) {
		header := data[i]
		if header == 0 {
			break
		}
		lengthBytes := int(header & 0x0F)
		offsetBytes := int(header >> 4)
		headerStart := i

		if headerStart+RunLength(header) > len(data) {
			return nil, fmt.Errorf("%w: run-list header at %d overruns buffer", ErrCorruptRecord, headerStart)
		}

		countStart := headerStart + 1
		count := runCount(data[countStart : countStart+lengthBytes])

		offsetStart := countStart + lengthBytes
		sparse := offsetBytes == 0
		var delta int64
		if !sparse {
			delta = runLCNDelta(data[offsetStart : offsetStart+offsetBytes])
		}
		i = headerStart + RunLength(header)

		lcn += delta
		run := Run{VCNBase: vcn, Count: count, Sparse: sparse}
		if !sparse {
			run.LCN = lcn
		}
		runs = append(runs, run)
		vcn += count
	}
	return runs, nil
}

// RunLength is the byte span of one run, including its header: 1 + L + C.
func RunLength(header byte) int {
	return 1 + int(header&0x0F) + int(header>>4)
}

// runCount decodes the unsigned, little-endian run-length field.
func runCount(b []byte) int64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return int64(v)
}

// runLCNDelta decodes the signed, little-endian cumulative LCN delta,
// sign-extending from the top bit of the field's last (most significant)
// byte — NTFS run-list offsets are two's-complement but only as wide as the
// header declares.
func runLCNDelta(b []byte) int64 {
	var v int64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | int64(b[i])
	}
	if len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		v |= -1 << uint(len(b)*8)
	}
	return v
}

// FindRun resolves vcn to an (lcn, count) pair: the physical run containing
// it and how many clusters remain in that run from vcn onward. Sparse runs
// resolve to lcn=0 with Sparse still true. Fails with ErrVCNOutOfRange if vcn
// lies outside every run.
func FindRun(runs []Run, vcn int64) (Run, error) {
	for _, r := range runs {
		if vcn >= r.VCNBase && vcn < r.VCNBase+r.Count {
			offset := vcn - r.VCNBase
			out := Run{
				VCNBase: vcn,
				Count:   r.Count - offset,
				Sparse:  r.Sparse,
			}
			if !r.Sparse {
				out.LCN = r.LCN + offset
			}
			return out, nil
		}
	}
	return Run{}, fmt.Errorf("%w: vcn %d", ErrVCNOutOfRange, vcn)
}

// TotalVCNs returns the number of VCNs spanned by a run-list, i.e. the
// high-VCN boundary (exclusive) used to iterate the whole list.
func TotalVCNs(runs []Run) int64 {
	if len(runs) == 0 {
		return 0
	}
	last := runs[len(runs)-1]
	return last.VCNBase + last.Count
}
