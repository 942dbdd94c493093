package wireserde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binPoint struct {
	X int32
	Y int32
}

func TestBinaryRoundTripStruct(t *testing.T) {
	src := binPoint{X: 10, Y: -20}
	b, err := ToBinary(src)
	require.NoError(t, err)

	var dst binPoint
	require.NoError(t, FromBinary(b, &dst))
	assert.Equal(t, src, dst)
}

func TestBinarySequenceOfIntegersLiteral(t *testing.T) {
	src := []int64{7, -1, 42}
	b, err := ToBinary(src)
	require.NoError(t, err)

	exp := []byte{
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // count = 3
		0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 7
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // -1
		0x2a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 42
	}
	assert.Equal(t, exp, b)

	var dst []int64
	require.NoError(t, FromBinary(b, &dst))
	assert.Equal(t, src, dst)
}

type binOptional struct {
	Name string
	Note *string
}

func TestBinaryOptionalRoundTrip(t *testing.T) {
	note := "present"
	tests := []binOptional{
		{Name: "a", Note: &note},
		{Name: "b"},
	}
	for _, src := range tests {
		b, err := ToBinary(src)
		require.NoError(t, err)
		var dst binOptional
		require.NoError(t, FromBinary(b, &dst))
		assert.Equal(t, src, dst)
	}
}

type binShape interface{ isBinShape() }
type binCircle struct{ Radius float64 }

func (binCircle) isBinShape() {}

type binSquare struct{ Side int }

func (binSquare) isBinShape() {}

func TestBinaryUnionRoundTrip(t *testing.T) {
	RegisterUnion((*binShape)(nil), binCircle{}, binSquare{})

	var shape binShape = binSquare{Side: 4}
	b, err := ToBinary(&shape)
	require.NoError(t, err)

	var dst binShape
	require.NoError(t, FromBinary(b, &dst))
	assert.Equal(t, shape, dst)
}

func TestBinaryPrefixedAdvancesCursor(t *testing.T) {
	a, err := ToBinary(int64(1))
	require.NoError(t, err)
	bEnc, err := ToBinary(int64(2))
	require.NoError(t, err)
	combined := append(append([]byte{}, a...), bEnc...)

	cursor := 0
	var x, y int64
	require.NoError(t, FromBinaryPrefixed(combined, &cursor, &x))
	assert.Equal(t, 8, cursor)
	require.NoError(t, FromBinaryPrefixed(combined, &cursor, &y))
	assert.Equal(t, int64(1), x)
	assert.Equal(t, int64(2), y)
}
