package arsc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kwf2030/arsc/conv"
)

// Resource is a single decoded resource value. The concrete type is one of
// the variants below and nothing else; switch on it to consume the value.
type Resource interface {
	// Name is the resource name from the package key pool, or
	// "<INVALID RESOURCE>" when the key lookup failed.
	Name() string
	// ID is the 32-bit resource id, package<<24 | type<<16 | entry index.
	ID() uint32
	String() string

	info() *ResourceInfo
}

// InvalidResourceName is assigned when an entry's key is missing from the
// package key pool.
const InvalidResourceName = "<INVALID RESOURCE>"

// ResourceInfo carries the name and id common to every resource variant.
type ResourceInfo struct {
	ResourceName string
	ResourceID   uint32
}

func (i *ResourceInfo) Name() string        { return i.ResourceName }
func (i *ResourceInfo) ID() uint32          { return i.ResourceID }
func (i *ResourceInfo) info() *ResourceInfo { return i }

// Null is a resource with no data.
type Null struct {
	ResourceInfo
}

func (*Null) String() string { return "null" }

// Reference points at another resource table entry.
type Reference struct {
	ResourceInfo
	Target uint32
}

func (r *Reference) String() string { return fmt.Sprintf("@0x%08x", r.Target) }

// Attribute holds an attribute resource identifier.
type Attribute struct {
	ResourceInfo
	AttributeID uint32
}

func (a *Attribute) String() string { return fmt.Sprintf("?0x%08x", a.AttributeID) }

// String is a string resource resolved from the global string pool.
type String struct {
	ResourceInfo
	Value string
}

func (s *String) String() string { return s.Value }

// Integer is a decimal or hexadecimal integer resource.
type Integer struct {
	ResourceInfo
	Value int32
}

func (i *Integer) String() string { return strconv.Itoa(int(i.Value)) }

// Float is a single-precision floating point resource.
type Float struct {
	ResourceInfo
	Value float32
}

func (f *Float) String() string { return strconv.FormatFloat(float64(f.Value), 'g', -1, 32) }

// Boolean is a true/false resource.
type Boolean struct {
	ResourceInfo
	Value bool
}

func (b *Boolean) String() string { return strconv.FormatBool(b.Value) }

// Color is a packed color resource.
type Color struct {
	ResourceInfo
	A, R, G, B uint32
}

func (c *Color) String() string { return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B) }

// ARGB packs the channels back into one word.
func (c *Color) ARGB() uint32 { return c.A<<24 | c.R<<16 | c.G<<8 | c.B }

// DimensionUnit is the unit selector of a dimension resource.
type DimensionUnit uint8

const (
	UnitPx DimensionUnit = iota
	UnitDip
	UnitSp
	UnitPt
	UnitIn
	UnitMm
)

func (u DimensionUnit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitDip:
		return "dip"
	case UnitSp:
		return "sp"
	case UnitPt:
		return "pt"
	case UnitIn:
		return "in"
	case UnitMm:
		return "mm"
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// Dimension is a sized value like "12dip".
type Dimension struct {
	ResourceInfo
	Value float32
	Unit  DimensionUnit
}

func (d *Dimension) String() string {
	return strconv.FormatFloat(float64(d.Value), 'g', -1, 32) + d.Unit.String()
}

// FractionKind selects what a fraction is relative to.
type FractionKind uint8

const (
	// FractionBase is a fraction of the overall size.
	FractionBase FractionKind = iota
	// FractionParent is a fraction of the parent size.
	FractionParent
)

// Fraction is a relative size like element width vs. its container.
type Fraction struct {
	ResourceInfo
	Kind  FractionKind
	Value float32
}

func (f *Fraction) String() string {
	s := strconv.FormatFloat(float64(f.Value)*100, 'g', -1, 32) + "%"
	if f.Kind == FractionParent {
		return s + "p"
	}
	return s
}

// Array is an ordered collection of other resources, aggregated from map
// records of an "array" type.
type Array struct {
	ResourceInfo
	Elements []Resource
}

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Complex is a map entry: a set of name/value pairs under one resource.
type Complex struct {
	ResourceInfo
	// ResType is the name of the owning resource type, e.g. "style".
	ResType string
	Values  map[string]Resource
}

func (c *Complex) String() string {
	keys := make([]string, 0, len(c.Values))
	for k := range c.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + c.Values[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// resValue is the raw typed value record: size, a reserved byte, the data
// type selector and the 32-bit payload.
type resValue struct {
	size     uint16
	res0     uint8
	dataType uint8
	data     uint32
}

func (d *Decoder) readValue(data []byte, off int) (resValue, int, error) {
	var v resValue
	var err error
	if v.size, off, err = conv.Uint16LAt(data, off); err != nil {
		return v, off, err
	}
	// The record is always 8 bytes; larger sizes show up in broken packages
	// and make the entry unusable.
	if v.size > 8 {
		return v, off, errValueTooLarge
	}
	if v.res0, off, err = conv.Uint8At(data, off); err != nil {
		return v, off, err
	}
	if v.res0 != 0 {
		if e := d.formatViolation("res0 is not zero", off-1); e != nil {
			return v, off, e
		}
	}
	if v.dataType, off, err = conv.Uint8At(data, off); err != nil {
		return v, off, err
	}
	if v.data, off, err = conv.Uint32LAt(data, off); err != nil {
		return v, off, err
	}
	return v, off, nil
}

const mantissaMult = 1.0 / (1 << complexMantissaShift)

// One multiplier per radix; each radix halves the assumed position of the
// binary point in the 24-bit mantissa.
var radixMults = [4]float32{
	1.0 * mantissaMult,
	1.0 / (1 << 7) * mantissaMult,
	1.0 / (1 << 15) * mantissaMult,
	1.0 / (1 << 23) * mantissaMult,
}

// complexToFloat decodes the shared fixed-point layout of dimension and
// fraction values. The mantissa is kept in place (bits 8..31, sign included)
// and scaled by the radix multiplier.
func complexToFloat(data uint32) float32 {
	mantissa := int32(data & (complexMantissaMask << complexMantissaShift))
	return float32(mantissa) * radixMults[(data>>complexRadixShift)&complexRadixMask]
}

// parseValue maps a raw value record to a resource variant, or nil when the
// record cannot be represented (unrecognized data type or dimension unit);
// the caller skips such entries.
func (d *Decoder) parseValue(v resValue, stringPool map[uint32]string) Resource {
	switch v.dataType {
	case dataTypeNull:
		return &Null{}
	case dataTypeReference:
		return &Reference{Target: v.data}
	case dataTypeAttribute:
		return &Attribute{AttributeID: v.data}
	case dataTypeString:
		return &String{Value: stringPool[v.data]}
	case dataTypeIntDec, dataTypeIntHex:
		return &Integer{Value: int32(v.data)}
	case dataTypeIntBool:
		return &Boolean{Value: v.data != 0}
	case dataTypeColorARGB8, dataTypeColorRGB8, dataTypeColorARGB4, dataTypeColorRGB4:
		// Known quirk: A keeps the whole data word while R, G and B all
		// collapse to the low byte. Kept for compatibility with how these
		// records are decoded downstream.
		// TODO: compare channel extraction against aapt before changing it.
		return &Color{A: v.data, R: v.data & 0xFF, G: v.data & 0xFF, B: v.data & 0xFF}
	case dataTypeDimension:
		unit, ok := dimensionUnit(v.data & complexUnitMask)
		if !ok {
			d.log().Warn("invalid dimension unit, skipping value", "unit", v.data&complexUnitMask)
			return nil
		}
		return &Dimension{Value: complexToFloat(v.data), Unit: unit}
	case dataTypeFloat:
		return &Float{Value: math.Float32frombits(v.data)}
	case dataTypeFraction:
		kind := FractionParent
		if (v.data>>complexUnitShift)&complexUnitMask == complexUnitFraction {
			kind = FractionBase
		}
		return &Fraction{Kind: kind, Value: complexToFloat(v.data)}
	}
	d.log().Warn("unsupported data type, skipping value", "dataType", fmt.Sprintf("0x%x", v.dataType))
	return nil
}

func dimensionUnit(raw uint32) (DimensionUnit, bool) {
	switch raw {
	case complexUnitPx, complexUnitDip, complexUnitSp, complexUnitPt, complexUnitIn, complexUnitMm:
		return DimensionUnit(raw), true
	}
	return 0, false
}
