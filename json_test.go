package wireserde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonPerson struct {
	Name string `wire:"name"`
	Age  int    `wire:"age"`
	Tags []string
	Note *string `wire:",null"`
}

func TestJSONRoundTrip(t *testing.T) {
	note := "hi"
	tests := []struct {
		name string
		src  jsonPerson
	}{
		{"basic", jsonPerson{Name: "Ada", Age: 36, Tags: []string{"math", "engineer"}}},
		{"with-optional", jsonPerson{Name: "Bo", Age: 1, Tags: []string{"solo"}, Note: &note}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ToJSON(tc.src)
			require.NoError(t, err)

			var dst jsonPerson
			require.NoError(t, FromJSON(s, &dst))
			assert.Equal(t, tc.src, dst)
		})
	}
}

func TestJSONPrettyCompactEquivalence(t *testing.T) {
	src := jsonPerson{Name: "Grace", Age: 85, Tags: []string{"navy", "compiler"}}

	compact, err := ToJSON(src)
	require.NoError(t, err)
	pretty, err := ToJSONPretty(src)
	require.NoError(t, err)
	assert.NotEqual(t, compact, pretty)

	var fromCompact, fromPretty jsonPerson
	require.NoError(t, FromJSON(compact, &fromCompact))
	require.NoError(t, FromJSON(pretty, &fromPretty))
	assert.Equal(t, fromCompact, fromPretty)
}

func TestJSONUnknownKeysSkipped(t *testing.T) {
	var dst jsonPerson
	err := FromJSON(`{"name":"X","age":5,"bogus":{"a":[1,2,3]},"tags":["z"]}`, &dst)
	require.NoError(t, err)
	assert.Equal(t, "X", dst.Name)
	assert.Equal(t, []string{"z"}, dst.Tags)
}

func TestJSONMissingFieldWithoutDefault(t *testing.T) {
	var dst jsonPerson
	err := FromJSON(`{"name":"X"}`, &dst)
	require.Error(t, err)
	var mfe *MissingFieldError
	assert.ErrorAs(t, err, &mfe)
}

type jsonWithDefault struct {
	Name  string
	Value string `wire:",default"`
}

func TestJSONDefaultSubstitution(t *testing.T) {
	var dst jsonWithDefault
	err := FromJSON(`{"name":"x"}`, &dst)
	require.NoError(t, err)
	assert.Equal(t, jsonWithDefault{Name: "x", Value: ""}, dst)
}

func TestJSONOrderIndependence(t *testing.T) {
	var a, b jsonPerson
	require.NoError(t, FromJSON(`{"name":"A","age":1,"tags":["x"]}`, &a))
	require.NoError(t, FromJSON(`{"tags":["x"],"age":1,"name":"A"}`, &b))
	assert.Equal(t, a, b)
}

func TestJSONDuplicateKeyLastWins(t *testing.T) {
	var dst jsonPerson
	require.NoError(t, FromJSON(`{"name":"first","name":"second","age":1,"tags":[]}`, &dst))
	assert.Equal(t, "second", dst.Name)
}

func TestJSONNullOptionalWritesNull(t *testing.T) {
	src := jsonPerson{Name: "N", Age: 2}
	s, err := ToJSON(src)
	require.NoError(t, err)
	assert.Contains(t, s, `"note":null`)
}

type jsonNoNull struct {
	Note *string
}

func TestJSONAbsentOptionalOmitted(t *testing.T) {
	s, err := ToJSON(jsonNoNull{})
	require.NoError(t, err)
	assert.Equal(t, "{}", s)
}

func TestParseJSONGeneric(t *testing.T) {
	v, err := ParseJSON(`{"a":1,"b":[true,null,"s"]}`)
	require.NoError(t, err)
	assert.Equal(t, KindMap, v.Kind)

	var n int64
	found, err := v.Reach(&n, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 1, n)
}
