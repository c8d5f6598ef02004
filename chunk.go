package arsc

import "github.com/kwf2030/arsc/conv"

// Chunk type codes.
const (
	chunkStringPool    = 0x0001
	chunkTable         = 0x0002
	chunkTablePackage  = 0x0200
	chunkTableType     = 0x0201
	chunkTableTypeSpec = 0x0202
)

// String pool flags.
const (
	poolSortedFlag = 1 << 0
	poolUTF8Flag   = 1 << 8
)

// Entry flags.
const (
	entryFlagComplex = 0x0001
	entryFlagPublic  = 0x0002
	entryFlagWeak    = 0x0004
	entryFlagCompact = 0x0008
)

// Type chunk flags.
const (
	typeFlagSparse   = 0x01
	typeFlagOffset16 = 0x02
)

// Dense index slot with no entry.
const noEntry = 0xFFFFFFFF

// Value data types.
const (
	dataTypeNull      = 0x00
	dataTypeReference = 0x01
	dataTypeAttribute = 0x02
	dataTypeString    = 0x03
	dataTypeFloat     = 0x04
	dataTypeDimension = 0x05
	dataTypeFraction  = 0x06

	dataTypeIntDec  = 0x10
	dataTypeIntHex  = 0x11
	dataTypeIntBool = 0x12

	dataTypeColorARGB8 = 0x1c
	dataTypeColorRGB8  = 0x1d
	dataTypeColorARGB4 = 0x1e
	dataTypeColorRGB4  = 0x1f
)

// Fixed-point (complex) value layout: 4 unit bits, 2 radix bits, a 24-bit
// mantissa in bits 8..31.
const (
	complexUnitShift = 0
	complexUnitMask  = 0xF

	complexUnitPx  = 0
	complexUnitDip = 1
	complexUnitSp  = 2
	complexUnitPt  = 3
	complexUnitIn  = 4
	complexUnitMm  = 5

	complexUnitFraction       = 0
	complexUnitFractionParent = 1

	complexRadixShift = 4
	complexRadixMask  = 0x3

	complexMantissaShift = 8
	complexMantissaMask  = 0xFFFFFF
)

// chunkHeader prefixes every chunk. size is the total byte extent of the
// chunk including payload, so a caller can skip to the next sibling without
// interpreting the body.
type chunkHeader struct {
	typ        uint16
	headerSize uint16
	size       uint32
}

func readChunkHeader(data []byte, off int) (chunkHeader, int, error) {
	var h chunkHeader
	var err error
	if h.typ, off, err = conv.Uint16LAt(data, off); err != nil {
		return h, off, err
	}
	if h.headerSize, off, err = conv.Uint16LAt(data, off); err != nil {
		return h, off, err
	}
	if h.size, off, err = conv.Uint32LAt(data, off); err != nil {
		return h, off, err
	}
	return h, off, nil
}
