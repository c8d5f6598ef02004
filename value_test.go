package arsc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestValue(t *testing.T, dataType uint8, data uint32, pool map[uint32]string) Resource {
	t.Helper()
	return NewDecoder(false).parseValue(resValue{size: 8, dataType: dataType, data: data}, pool)
}

func TestComplexToFloat(t *testing.T) {
	// 12 with the binary point after the mantissa.
	assert.InDelta(t, 12.0, complexToFloat(12<<complexMantissaShift), 1e-6)
	// 1.5 as a 16.7 fixed-point mantissa: 192/128.
	assert.InDelta(t, 1.5, complexToFloat(0xC0<<complexMantissaShift|1<<complexRadixShift), 1e-6)
	// Negative mantissas keep their sign.
	var mantissa int32 = -3
	neg := uint32(mantissa << complexMantissaShift)
	assert.InDelta(t, -3.0, complexToFloat(neg&(complexMantissaMask<<complexMantissaShift)), 1e-6)
}

func TestParseDimension(t *testing.T) {
	res := parseTestValue(t, dataTypeDimension, 12<<complexMantissaShift|complexUnitDip, nil)
	dim, ok := res.(*Dimension)
	require.True(t, ok)
	assert.InDelta(t, 12.0, dim.Value, 1e-6)
	assert.Equal(t, UnitDip, dim.Unit)
	assert.Equal(t, "12dip", dim.String())

	res = parseTestValue(t, dataTypeDimension, 160<<complexMantissaShift|complexUnitSp, nil)
	dim, ok = res.(*Dimension)
	require.True(t, ok)
	assert.Equal(t, UnitSp, dim.Unit)

	// Unit selectors past mm have no meaning; the value is dropped.
	assert.Nil(t, parseTestValue(t, dataTypeDimension, 0x0F, nil))
}

func TestParseFraction(t *testing.T) {
	// 0.5 as a 0.23 fixed-point mantissa.
	half := uint32(0x400000)<<complexMantissaShift | 3<<complexRadixShift

	res := parseTestValue(t, dataTypeFraction, half|complexUnitFraction, nil)
	fr, ok := res.(*Fraction)
	require.True(t, ok)
	assert.Equal(t, FractionBase, fr.Kind)
	assert.InDelta(t, 0.5, fr.Value, 1e-6)
	assert.Equal(t, "50%", fr.String())

	res = parseTestValue(t, dataTypeFraction, half|complexUnitFractionParent, nil)
	fr, ok = res.(*Fraction)
	require.True(t, ok)
	assert.Equal(t, FractionParent, fr.Kind)
	assert.Equal(t, "50%p", fr.String())
}

func TestParseColor(t *testing.T) {
	res := parseTestValue(t, dataTypeColorARGB8, 0x11223344, nil)
	c, ok := res.(*Color)
	require.True(t, ok)
	assert.Equal(t, uint32(0x11223344), c.A)
	assert.Equal(t, uint32(0x44), c.R)
	assert.Equal(t, uint32(0x44), c.G)
	assert.Equal(t, uint32(0x44), c.B)

	for _, dt := range []uint8{dataTypeColorRGB8, dataTypeColorARGB4, dataTypeColorRGB4} {
		_, ok := parseTestValue(t, dt, 0xFF0000FF, nil).(*Color)
		assert.True(t, ok)
	}
}

func TestParseScalars(t *testing.T) {
	i, ok := parseTestValue(t, dataTypeIntDec, 0xFFFFFFFF, nil).(*Integer)
	require.True(t, ok)
	assert.Equal(t, int32(-1), i.Value)

	i, ok = parseTestValue(t, dataTypeIntHex, 0x7F, nil).(*Integer)
	require.True(t, ok)
	assert.Equal(t, int32(127), i.Value)

	b, ok := parseTestValue(t, dataTypeIntBool, 0, nil).(*Boolean)
	require.True(t, ok)
	assert.False(t, b.Value)
	b, ok = parseTestValue(t, dataTypeIntBool, 0xFFFFFFFF, nil).(*Boolean)
	require.True(t, ok)
	assert.True(t, b.Value)

	f, ok := parseTestValue(t, dataTypeFloat, math.Float32bits(3.5), nil).(*Float)
	require.True(t, ok)
	assert.Equal(t, float32(3.5), f.Value)

	_, ok = parseTestValue(t, dataTypeNull, 0, nil).(*Null)
	assert.True(t, ok)

	r, ok := parseTestValue(t, dataTypeReference, 0x7f010002, nil).(*Reference)
	require.True(t, ok)
	assert.Equal(t, uint32(0x7f010002), r.Target)
	assert.Equal(t, "@0x7f010002", r.String())

	a, ok := parseTestValue(t, dataTypeAttribute, 0x01010003, nil).(*Attribute)
	require.True(t, ok)
	assert.Equal(t, uint32(0x01010003), a.AttributeID)

	s, ok := parseTestValue(t, dataTypeString, 2, map[uint32]string{2: "hi"}).(*String)
	require.True(t, ok)
	assert.Equal(t, "hi", s.Value)

	assert.Nil(t, parseTestValue(t, 0x42, 0, nil))
}

func TestColorARGB(t *testing.T) {
	c := &Color{A: 0xFF, R: 0x10, G: 0x20, B: 0x30}
	assert.Equal(t, uint32(0xFF102030), c.ARGB())
	assert.Equal(t, "#ff102030", c.String())
}
