package wireserde

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walkPlain struct {
	Name  string
	Value string `wire:",default"`
	Ty    string `wire:"type"`
}

type walkPositional struct {
	Container `wire:"positional"`
	X         int
	Y         int
}

type walkTransparent struct {
	Container `wire:"transparent"`
	Inner     string
}

type walkTooManyTransparent struct {
	Container `wire:"transparent"`
	A         string
	B         string
}

func TestWalkTypeDefaultsAndRename(t *testing.T) {
	ti, err := walkType(reflect.TypeOf(walkPlain{}))
	require.NoError(t, err)
	require.Len(t, ti.fields, 3)

	assert.Equal(t, "name", ti.fields[0].wireName)
	assert.Equal(t, "value", ti.fields[1].wireName)
	assert.True(t, ti.fields[1].attr.hasDefault)
	assert.Equal(t, "type", ti.fields[2].wireName)

	f, ok := ti.fieldByWireName("type")
	require.True(t, ok)
	assert.Equal(t, "Ty", f.goName)
}

func TestWalkTypePositional(t *testing.T) {
	ti, err := walkType(reflect.TypeOf(walkPositional{}))
	require.NoError(t, err)
	assert.True(t, ti.container.positional)
	require.Len(t, ti.fields, 2)
	assert.Nil(t, ti.transparent)
}

func TestWalkTypeTransparent(t *testing.T) {
	ti, err := walkType(reflect.TypeOf(walkTransparent{}))
	require.NoError(t, err)
	require.NotNil(t, ti.transparent)
	assert.Equal(t, "Inner", ti.transparent.goName)
}

func TestWalkTypeTransparentRejectsMultipleFields(t *testing.T) {
	_, err := walkType(reflect.TypeOf(walkTooManyTransparent{}))
	require.Error(t, err)
	var attrErr *invalidAttributeError
	assert.ErrorAs(t, err, &attrErr)
}
