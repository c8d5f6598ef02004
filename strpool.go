package arsc

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"github.com/kwf2030/arsc/conv"
)

type stringPoolHeader struct {
	stringCount  uint32
	styleCount   uint32
	sorted       bool
	utf8         bool
	stringsStart uint32
	stylesStart  uint32
}

// readStringPoolHeader reads the 20 pool-specific header bytes that follow
// the chunk header.
func readStringPoolHeader(data []byte, off int) (stringPoolHeader, int, error) {
	var h stringPoolHeader
	var flags uint32
	var err error
	if h.stringCount, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	if h.styleCount, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	if flags, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	h.sorted = flags&poolSortedFlag != 0
	h.utf8 = flags&poolUTF8Flag != 0
	if h.stringsStart, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	if h.stylesStart, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	return h, off, nil
}

// readStringPool decodes the string data indexed by the offset array at off.
// chunkStart is the position the pool chunk itself begins at; string offsets
// are relative to stringsStart from there, not to the referencing chunk.
// Strings are stored by ordinal into dst.
func readStringPool(data []byte, off, chunkStart int, h stringPoolHeader, dst map[uint32]string) (int, error) {
	for i := uint32(0); i < h.stringCount; i++ {
		idx, next, err := conv.Uint32LAt(data, off)
		if err != nil {
			return off, err
		}
		off = next

		pos := chunkStart + int(h.stringsStart) + int(idx)
		var s string
		if h.utf8 {
			s, err = readStringUTF8(data, pos)
		} else {
			s, err = readStringUTF16(data, pos)
		}
		if err != nil {
			return off, err
		}
		dst[i] = trim(s)
	}
	return off, nil
}

// readStringUTF16 reads a 16-bit code unit count followed by that many
// UTF-16LE code units. A zero count decodes to "" without further reads.
func readStringUTF16(data []byte, off int) (string, error) {
	n, off, err := conv.Uint16LAt(data, off)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	raw, _, err := conv.BytesAt(data, off, int(n)*2)
	if err != nil {
		return "", err
	}
	return decodeUTF16LE(raw), nil
}

// readStringUTF8 skips one length-metadata byte, then reads a one-byte
// length and that many bytes of UTF-8. Strings longer than 127 bytes use a
// two-byte length on the wire which this does not handle, so such strings
// come back truncated.
// TODO: check multi-byte UTF-8 length prefixes against real packages.
func readStringUTF8(data []byte, off int) (string, error) {
	n, _, err := conv.Uint8At(data, off+1)
	if err != nil {
		return "", err
	}
	raw, _, err := conv.BytesAt(data, off+2, int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeUTF16LE(raw []byte) string {
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return string(utf16.Decode(units))
}

// trim drops leading and trailing control and space characters, including
// the NUL padding of fixed-size name fields.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
