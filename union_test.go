package wireserde

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unionTestShape interface{ isUnionTestShape() }

type unionTestCircle struct {
	Radius float64
}

func (unionTestCircle) isUnionTestShape() {}

type unionTestSquare struct {
	Side int
}

func (unionTestSquare) isUnionTestShape() {}

type unionTestTriangle struct {
	Container `wire:"rename=Tri"`
	Base      int
}

func (unionTestTriangle) isUnionTestShape() {}

func TestRegisterUnionAndLookup(t *testing.T) {
	RegisterUnion((*unionTestShape)(nil), unionTestCircle{}, unionTestSquare{}, unionTestTriangle{})

	ui, ok := lookupUnion(reflect.TypeOf((*unionTestShape)(nil)).Elem())
	require.True(t, ok)
	require.Len(t, ui.variants, 3)

	v, idx := ui.variantByType(reflect.TypeOf(unionTestCircle{}))
	require.NotNil(t, v)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "unionTestCircle", v.name)

	v, idx = ui.variantByName("Tri")
	require.NotNil(t, v)
	assert.Equal(t, 2, idx)
	assert.Equal(t, reflect.TypeOf(unionTestTriangle{}), v.typ)

	byIdx, ok := ui.variantByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "unionTestSquare", byIdx.name)

	_, ok = ui.variantByIndex(99)
	assert.False(t, ok)
}

func TestRegisterUnionPanicsOnNonInterface(t *testing.T) {
	assert.Panics(t, func() {
		RegisterUnion(unionTestCircle{})
	})
}

func TestRegisterUnionPanicsOnNonImplementer(t *testing.T) {
	type other struct{}
	assert.Panics(t, func() {
		RegisterUnion((*unionTestShape)(nil), other{})
	})
}
