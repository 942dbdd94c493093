package wireserde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ronPoint struct {
	X int
	Y int
}

type ronPositional struct {
	Container `wire:"positional"`
	A         int
	B         int
}

func TestRONRoundTrip(t *testing.T) {
	src := ronPoint{X: 1, Y: 2}
	s, err := ToRON(src)
	require.NoError(t, err)
	assert.Equal(t, "ronPoint(x:1,y:2)", s)

	var dst ronPoint
	require.NoError(t, FromRON(s, &dst))
	assert.Equal(t, src, dst)
}

func TestRONPositionalRoundTrip(t *testing.T) {
	src := ronPositional{A: 7, B: 9}
	s, err := ToRON(src)
	require.NoError(t, err)
	assert.Equal(t, "ronPositional(7,9)", s)

	var dst ronPositional
	require.NoError(t, FromRON(s, &dst))
	assert.Equal(t, src, dst)
}

func TestRONTrailingCommaAndComments(t *testing.T) {
	var dst ronPoint
	err := FromRON("Point( x: 1, y: 2, /*trail*/ )", &dst)
	require.NoError(t, err)
	assert.Equal(t, ronPoint{X: 1, Y: 2}, dst)
}

func TestRONLineComment(t *testing.T) {
	var dst ronPoint
	err := FromRON("Point(x: 1, // set x\ny: 2)", &dst)
	require.NoError(t, err)
	assert.Equal(t, ronPoint{X: 1, Y: 2}, dst)
}

type ronOptional struct {
	Name string
	Note *string
}

func TestRONOptionalSomeNone(t *testing.T) {
	note := "hello"
	src := ronOptional{Name: "a", Note: &note}
	s, err := ToRON(src)
	require.NoError(t, err)
	assert.Contains(t, s, "Some(")

	var dst ronOptional
	require.NoError(t, FromRON(s, &dst))
	assert.Equal(t, src, dst)

	src2 := ronOptional{Name: "b"}
	s2, err := ToRON(src2)
	require.NoError(t, err)
	assert.Contains(t, s2, "None")

	var dst2 ronOptional
	require.NoError(t, FromRON(s2, &dst2))
	assert.Nil(t, dst2.Note)
}

func TestRONUnknownFieldIsError(t *testing.T) {
	var dst ronPoint
	err := FromRON("Point(x: 1, y: 2, z: 3)", &dst)
	assert.Error(t, err)
}

func TestRONSeqAndMap(t *testing.T) {
	type seqMap struct {
		Items []int
		Extra map[string]int
	}
	src := seqMap{Items: []int{1, 2, 3}, Extra: map[string]int{"a": 1}}
	s, err := ToRON(src)
	require.NoError(t, err)

	var dst seqMap
	require.NoError(t, FromRON(s, &dst))
	assert.Equal(t, src, dst)
}
