package conv

import "encoding/binary"

// Builder assembles little-endian binary buffers. Chunked formats carry total
// sizes in their headers, so offsets returned by Len can be patched later via
// the Set*At methods once the payload length is known.
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder {
	return &Builder{buf: make([]byte, 0, 256)}
}

func (b *Builder) Uint8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) Uint16L(v uint16) *Builder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

func (b *Builder) Uint32L(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *Builder) Bytes(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Zero appends n zero bytes.
func (b *Builder) Zero(n int) *Builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

func (b *Builder) SetUint16LAt(off int, v uint16) {
	binary.LittleEndian.PutUint16(b.buf[off:], v)
}

func (b *Builder) SetUint32LAt(off int, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[off:], v)
}

func (b *Builder) Len() int {
	return len(b.buf)
}

func (b *Builder) Data() []byte {
	return b.buf
}
