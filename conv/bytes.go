package conv

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfBounds is returned when a read would pass the end of the buffer.
var ErrOutOfBounds = errors.New("conv: read out of bounds")

// Uint8At reads one byte at off, returning the value and the advanced offset.
func Uint8At(data []byte, off int) (uint8, int, error) {
	if off < 0 || off >= len(data) {
		return 0, off, ErrOutOfBounds
	}
	return data[off], off + 1, nil
}

// Uint16LAt reads a little-endian uint16 at off, returning the value and the
// advanced offset.
func Uint16LAt(data []byte, off int) (uint16, int, error) {
	if off < 0 || off+2 > len(data) {
		return 0, off, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint16(data[off:]), off + 2, nil
}

// Uint32LAt reads a little-endian uint32 at off, returning the value and the
// advanced offset.
func Uint32LAt(data []byte, off int) (uint32, int, error) {
	if off < 0 || off+4 > len(data) {
		return 0, off, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint32(data[off:]), off + 4, nil
}

// BytesAt returns n bytes starting at off without copying, plus the advanced
// offset.
func BytesAt(data []byte, off, n int) ([]byte, int, error) {
	if n < 0 || off < 0 || off+n > len(data) {
		return nil, off, ErrOutOfBounds
	}
	return data[off : off+n], off + n, nil
}
