package wireserde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario_test.go covers spec.md §8's six literal end-to-end scenarios.

type scenarioProperty struct {
	Name  string `wire:"name"`
	Value string `wire:"value,default"`
	Ty    string `wire:"type"`
}

func TestScenario1Property(t *testing.T) {
	src := scenarioProperty{Name: "x", Value: "", Ty: "int"}
	s, err := ToJSON(src)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x","value":"","type":"int"}`, s)

	var dst scenarioProperty
	require.NoError(t, FromJSON(`{"name":"x","type":"int"}`, &dst))
	assert.Equal(t, src, dst)
}

type scenarioShape interface{ isScenarioShape() }

type scenarioCircle struct {
	Container `wire:"positional,rename=Circle"`
	Radius    float64
}

func (scenarioCircle) isScenarioShape() {}

type scenarioSquare struct {
	Container `wire:"rename=Square"`
	Side      int
}

func (scenarioSquare) isScenarioShape() {}

func TestScenario2TaggedUnion(t *testing.T) {
	RegisterUnion((*scenarioShape)(nil), scenarioCircle{}, scenarioSquare{})

	var circle scenarioShape = scenarioCircle{Radius: 1.0}
	s, err := ToJSON(&circle)
	require.NoError(t, err)
	assert.Equal(t, `{"Circle":[1]}`, s)

	var square scenarioShape = scenarioSquare{Side: 2}
	s2, err := ToJSON(&square)
	require.NoError(t, err)
	assert.Equal(t, `{"Square":{"side":2}}`, s2)

	var dstCircle scenarioShape
	require.NoError(t, FromJSON(s, &dstCircle))
	assert.Equal(t, circle, dstCircle)

	var dstSquare scenarioShape
	require.NoError(t, FromJSON(s2, &dstSquare))
	assert.Equal(t, square, dstSquare)
}

func TestScenario3BinarySequence(t *testing.T) {
	src := []int64{7, -1, 42}
	b, err := ToBinary(src)
	require.NoError(t, err)
	exp := []byte{
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x2a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, exp, b)

	var dst []int64
	require.NoError(t, FromBinary(b, &dst))
	assert.Equal(t, src, dst)
}

type scenarioOmit struct {
	X *string
}

type scenarioNull struct {
	X *string `wire:",null"`
}

func TestScenario4OptionalDefaultAndNull(t *testing.T) {
	s, err := ToJSON(scenarioOmit{})
	require.NoError(t, err)
	assert.Equal(t, "{}", s)
	var dstOmit scenarioOmit
	require.NoError(t, FromJSON(s, &dstOmit))
	assert.Nil(t, dstOmit.X)

	s2, err := ToJSON(scenarioNull{})
	require.NoError(t, err)
	assert.Equal(t, `{"x":null}`, s2)
	var dstNull scenarioNull
	require.NoError(t, FromJSON(s2, &dstNull))
	assert.Nil(t, dstNull.X)
}

type scenarioPoint struct {
	X int
	Y int
}

func TestScenario5RONTrailingCommaAndComments(t *testing.T) {
	var dst scenarioPoint
	err := FromRON("Point( x: 1, y: 2, /*trail*/ )", &dst)
	require.NoError(t, err)
	assert.Equal(t, scenarioPoint{X: 1, Y: 2}, dst)
}

type scenarioName struct {
	Container `wire:"transparent"`
	Inner     string
}

func TestScenario6Transparent(t *testing.T) {
	src := scenarioName{Inner: "hi"}
	s, err := ToJSON(src)
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, s)

	var dst scenarioName
	require.NoError(t, FromJSON(s, &dst))
	assert.Equal(t, src, dst)
}
