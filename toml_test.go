package wireserde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tomlAddress struct {
	City string
	Zip  int
}

type tomlPerson struct {
	Name    string
	Age     int
	Address tomlAddress
	Pets    []tomlPet
}

type tomlPet struct {
	Name string
}

func TestToTOMLScalarsBeforeTables(t *testing.T) {
	src := tomlPerson{
		Name: "Ada",
		Age:  36,
		Address: tomlAddress{
			City: "London",
			Zip:  10000,
		},
		Pets: []tomlPet{{Name: "Cat"}, {Name: "Dog"}},
	}
	s, err := ToTOML(src)
	require.NoError(t, err)

	assert.Equal(t, `name = "Ada"
age = 36

[address]
city = "London"
zip = 10000

[[pets]]
name = "Cat"

[[pets]]
name = "Dog"
`, s)
}

func TestToTOMLRequiresTopLevelStruct(t *testing.T) {
	_, err := ToTOML(42)
	assert.Error(t, err)
}

func TestFromTOMLUnsupported(t *testing.T) {
	var dst tomlPerson
	err := FromTOML(`name = "x"`, &dst)
	assert.ErrorIs(t, err, ErrUnsupported)
}
