package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterJSON = `{
	"types": [
		{
			"name": "Counter",
			"type": {
				"kind": "struct",
				"fields": [
					{"name": "count", "type": "u64"},
					{"name": "label", "type": "string"},
					{"name": "owner", "type": {"kind": "option", "elem": "Owner"}}
				]
			}
		},
		{
			"name": "Owner",
			"type": {
				"kind": "struct",
				"fields": [
					{"name": "key", "type": {"kind": "array", "elem": "u8", "len": 32}},
					{"name": "tags", "type": {"kind": "vec", "elem": "string"}}
				]
			}
		}
	]
}`

const counterYAML = `
types:
  - name: Counter
    type:
      kind: struct
      fields:
        - {name: count, type: u64}
        - {name: label, type: string}
        - name: owner
          type:
            kind: option
            elem: Owner
  - name: Owner
    type:
      kind: struct
      fields:
        - name: key
          type: {kind: array, elem: u8, len: 32}
        - name: tags
          type: {kind: vec, elem: string}
`

func TestParseJSON(t *testing.T) {
	c, err := ParseJSON([]byte(counterJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"Counter", "Owner"}, c.Names())

	counter, ok := c.Lookup("Counter")
	require.True(t, ok)
	assert.Equal(t, KindStruct, counter.Type.Kind)
	require.Len(t, counter.Type.Fields, 3)

	assert.Equal(t, "count", counter.Type.Fields[0].Name)
	assert.Equal(t, KindU64, counter.Type.Fields[0].Type.Kind)

	owner := counter.Type.Fields[2]
	assert.Equal(t, KindOption, owner.Type.Kind)
	require.NotNil(t, owner.Type.Elem)
	assert.Equal(t, KindDefined, owner.Type.Elem.Kind)
	assert.Equal(t, "Owner", owner.Type.Elem.Defined)

	def, ok := c.Lookup("Owner")
	require.True(t, ok)
	key := def.Type.Fields[0]
	assert.Equal(t, KindArray, key.Type.Kind)
	assert.Equal(t, 32, key.Type.Len)
	assert.Equal(t, KindU8, key.Type.Elem.Kind)
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := ParseJSON([]byte(counterJSON))
	require.NoError(t, err)
	fromYAML, err := ParseYAML([]byte(counterYAML))
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Defs(), fromYAML.Defs())
	assert.Equal(t, fromJSON.Fingerprint(), fromYAML.Fingerprint())
}

func TestParseEnum(t *testing.T) {
	c, err := ParseJSON([]byte(`{
		"types": [{
			"name": "Side",
			"type": {"kind": "enum", "variants": [
				{"name": "Bid"},
				{"name": "Ask", "fields": [{"name": "price", "type": "u64"}]}
			]}
		}]
	}`))
	require.NoError(t, err)

	def, ok := c.Lookup("Side")
	require.True(t, ok)
	require.Len(t, def.Type.Variants, 2)
	assert.Equal(t, "Bid", def.Type.Variants[0].Name)
	assert.Empty(t, def.Type.Variants[0].Fields)
	assert.Equal(t, "Ask", def.Type.Variants[1].Name)
	require.Len(t, def.Type.Variants[1].Fields, 1)
}

func TestParseRejectsDuplicateTypeName(t *testing.T) {
	_, err := ParseJSON([]byte(`{
		"types": [
			{"name": "A", "type": "u8"},
			{"name": "A", "type": "u16"}
		]
	}`))
	assert.ErrorIs(t, err, ErrDuplicateType)
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		idl  string
	}{
		{"not json", `{{`},
		{"unknown kind", `{"types": [{"name": "A", "type": {"kind": "quaternion"}}]}`},
		{"kindless object", `{"types": [{"name": "A", "type": {}}]}`},
		{"vec without elem", `{"types": [{"name": "A", "type": {"kind": "vec"}}]}`},
		{"array without len", `{"types": [{"name": "A", "type": {"kind": "array", "elem": "u8"}}]}`},
		{"enum without variants", `{"types": [{"name": "A", "type": {"kind": "enum"}}]}`},
		{"nameless type", `{"types": [{"type": "u8"}]}`},
		{"nameless field", `{"types": [{"name": "A", "type": {"kind": "struct", "fields": [{"type": "u8"}]}}]}`},
		{"duplicate field", `{"types": [{"name": "A", "type": {"kind": "struct", "fields": [
			{"name": "x", "type": "u8"}, {"name": "x", "type": "u8"}]}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tc.idl))
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestFingerprintChangesWithSchema(t *testing.T) {
	base, err := ParseJSON([]byte(`{"types": [{"name": "A", "type": "u8"}]}`))
	require.NoError(t, err)

	renamed, err := ParseJSON([]byte(`{"types": [{"name": "B", "type": "u8"}]}`))
	require.NoError(t, err)

	widened, err := ParseJSON([]byte(`{"types": [{"name": "A", "type": "u16"}]}`))
	require.NoError(t, err)

	assert.NotEqual(t, base.Fingerprint(), renamed.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), widened.Fingerprint())
	assert.Equal(t, base.Fingerprint(), base.Fingerprint())
}

func TestEmptyCollection(t *testing.T) {
	c, err := NewCollection(nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Names())

	_, ok := c.Lookup("anything")
	assert.False(t, ok)
}
