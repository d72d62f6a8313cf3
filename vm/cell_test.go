package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_IntRoundTrip(t *testing.T) {
	assert := assert.New(t)

	values := []int32{0, 1, -1, 42, math.MaxInt32, math.MinInt32}
	for _, value := range values {
		c := CellFromInt(value)
		assert.Equal(value, c.Int())
	}
}

func TestCell_FloatRoundTrip(t *testing.T) {
	assert := assert.New(t)

	values := []float32{0, 1, -1, 3.14159, math.MaxFloat32, math.SmallestNonzeroFloat32}
	for _, value := range values {
		c := CellFromFloat(value)
		assert.Equal(value, c.Float())
	}
}

func TestCell_NaNBitExact(t *testing.T) {
	assert := assert.New(t)

	// Quiet NaN with a payload; the round trip must preserve the exact bits.
	nan := math.Float32frombits(0x7fc0_0001)
	c := CellFromFloat(nan)
	assert.Equal(uint32(0x7fc0_0001), c.Bits())
	assert.Equal(uint32(0x7fc0_0001), math.Float32bits(c.Float()))
}

func TestCell_Aliasing(t *testing.T) {
	assert := assert.New(t)

	// Reading the other view reinterprets the bits, it never converts.
	c := CellFromFloat(1.0)
	assert.Equal(int32(0x3f80_0000), c.Int())

	c = CellFromInt(0x3f80_0000)
	assert.Equal(float32(1.0), c.Float())

	c = CellFromInt(-1)
	assert.Equal(uint32(0xffff_ffff), c.Bits())
}

func TestCell_String(t *testing.T) {
	assert := assert.New(t)

	c := CellFromInt(0x1234_5678)
	assert.Equal("1234_5678", c.String())
}
