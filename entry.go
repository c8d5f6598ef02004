package arsc

import (
	"fmt"

	"github.com/kwf2030/arsc/conv"
)

// tableEntry is the per-resource entry header. size distinguishes a simple
// entry (8 bytes, followed by one value record) from a map entry (16 bytes,
// adding parent and count, followed by count map records).
type tableEntry struct {
	size    uint16
	complex bool
	public  bool
	key     uint32
	parent  uint32
	count   uint32
}

func (d *Decoder) readEntry(data []byte, off int) (tableEntry, int, error) {
	var e tableEntry
	var err error
	start := off
	if e.size, off, err = conv.Uint16LAt(data, off); err != nil {
		return e, off, err
	}
	if e.size != 8 && e.size != 16 {
		return e, off, fmt.Errorf("arsc: unknown entry size 0x%x (offset 0x%x)", e.size, start)
	}

	var flags uint16
	if flags, off, err = conv.Uint16LAt(data, off); err != nil {
		return e, off, err
	}
	e.complex = flags&entryFlagComplex != 0
	e.public = flags&entryFlagPublic != 0

	// Weak and compact entries are recognized but not implemented. Warn once
	// per kind and read them as ordinary entries.
	if flags&entryFlagWeak != 0 && !d.warnedWeak {
		d.warnedWeak = true
		d.log().Warn("weak resource entries are not supported, reading as-is")
	}
	if flags&entryFlagCompact != 0 && !d.warnedCompact {
		d.warnedCompact = true
		d.log().Warn("compact resource entries are not supported, reading as-is")
	}

	if e.key, off, err = conv.Uint32LAt(data, off); err != nil {
		return e, off, err
	}
	if e.size == 16 {
		if e.parent, off, err = conv.Uint32LAt(data, off); err != nil {
			return e, off, err
		}
		if e.count, off, err = conv.Uint32LAt(data, off); err != nil {
			return e, off, err
		}
	}
	return e, off, nil
}

// entryRef locates one entry in a type chunk: its index within the type and
// its byte offset from entriesStart.
type entryRef struct {
	index  uint32
	offset uint32
}

// readEntryIndex reads the index table of a type chunk. The dense form holds
// one u32 offset per possible index (noEntry marks a hole), the sparse form
// holds (index, offset/4) u16 pairs for existing entries only.
func readEntryIndex(data []byte, off int, count uint32, sparse bool) ([]entryRef, int, error) {
	// count comes straight off the wire; cap the allocation by what the
	// buffer can actually hold (4 bytes per slot either way) and let the
	// bounds-checked reads fail on the first slot past the end.
	hint := count
	if off < len(data) {
		if avail := uint32(len(data)-off) / 4; avail < hint {
			hint = avail
		}
	} else {
		hint = 0
	}
	refs := make([]entryRef, 0, hint)
	var err error
	for i := uint32(0); i < count; i++ {
		var ref entryRef
		if sparse {
			var idx, raw uint16
			if idx, off, err = conv.Uint16LAt(data, off); err != nil {
				return nil, off, err
			}
			if raw, off, err = conv.Uint16LAt(data, off); err != nil {
				return nil, off, err
			}
			ref = entryRef{index: uint32(idx), offset: uint32(raw) * 4}
		} else {
			var raw uint32
			if raw, off, err = conv.Uint32LAt(data, off); err != nil {
				return nil, off, err
			}
			ref = entryRef{index: i, offset: raw}
		}
		refs = append(refs, ref)
	}
	return refs, off, nil
}
