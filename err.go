package arsc

import (
	"errors"
	"fmt"
)

var (
	// ErrOffset16 reports a type chunk using the 16-bit entry offset
	// encoding, whose offset semantics are not implemented. Always fatal.
	ErrOffset16 = errors.New("arsc: 16-bit entry offsets are not supported")

	// ErrUndeclaredType reports a type entry chunk whose type id was never
	// declared by a preceding type spec chunk.
	ErrUndeclaredType = errors.New("arsc: type chunk references undeclared type")
)

// errValueTooLarge marks a raw value record whose size field exceeds 8 bytes.
// The affected entry is skipped and parsing continues.
var errValueTooLarge = errors.New("arsc: value record larger than 8 bytes")

// FormatError reports a reserved field holding a non-zero value. A strict
// decoder aborts with it, a lenient one logs and keeps the value as read.
type FormatError struct {
	Msg    string
	Offset int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("arsc: %s (offset 0x%x)", e.Msg, e.Offset)
}
