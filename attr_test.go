package wireserde

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		exp  fieldAttr
	}{
		{"empty", "", fieldAttr{}},
		{"skip-dash", "-", fieldAttr{skip: true}},
		{"rename-only", "myName", fieldAttr{name: "myName"}},
		{"rename-plus-default", "myName,default", fieldAttr{name: "myName", hasDefault: true}},
		{"skip-word", ",skip", fieldAttr{skip: true}},
		{"null", ",null", fieldAttr{serializeNoneAsNull: true, noneAsNullSet: true}},
		{"nonull", ",nonull", fieldAttr{serializeNoneAsNull: false, noneAsNullSet: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFieldTag(tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, got)
		})
	}
}

func TestParseFieldTagUnknownWord(t *testing.T) {
	_, err := parseFieldTag(",bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
}

func TestParseContainerTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		exp  containerAttr
	}{
		{"empty", "", containerAttr{}},
		{"positional", "positional", containerAttr{positional: true}},
		{"transparent", "transparent", containerAttr{transparent: true}},
		{"null", "null", containerAttr{serializeNoneAsNull: true}},
		{"rename", "rename=Foo", containerAttr{rename: "Foo"}},
		{"combo", "positional,rename=Foo", containerAttr{positional: true, rename: "Foo"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseContainerTag(tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, got)
		})
	}
}

func TestParseContainerTagUnknownWord(t *testing.T) {
	_, err := parseContainerTag("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
}

func TestLowerCamel(t *testing.T) {
	tests := []struct{ in, exp string }{
		{"Name", "name"},
		{"ID", "id"},
		{"URLPath", "urlPath"},
		{"A", "a"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.exp, lowerCamel(tc.in), tc.in)
	}
}
