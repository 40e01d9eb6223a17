package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbench/graphbench-go/internal/errors"
)

func TestDecodeScalars(t *testing.T) {
	m, err := Decode(`{"name": "TP53", "mass": 43.653, "reviewed": true, "alias": null}`)
	require.NoError(t, err)

	assert.True(t, m["name"].Equal(String("TP53")))
	assert.True(t, m["mass"].Equal(Number(43.653)))
	assert.True(t, m["reviewed"].Equal(Bool(true)))
	assert.True(t, m["alias"].Equal(Null()))
}

func TestDecodeNested(t *testing.T) {
	m, err := Decode(`{"go_terms": ["GO:0003677", "GO:0005634"], "xrefs": {"pdb": "1TUP", "count": 2}}`)
	require.NoError(t, err)

	assert.True(t, m["go_terms"].Equal(List(String("GO:0003677"), String("GO:0005634"))))

	xrefs := m["xrefs"].MapVal()
	require.NotNil(t, xrefs)
	assert.True(t, xrefs["pdb"].Equal(String("1TUP")))
	assert.True(t, xrefs["count"].Equal(Number(2)))
}

func TestDecodePythonRepr(t *testing.T) {
	// Upstream exports frequently hold Python repr() output in the
	// properties column.
	m, err := Decode(`{'organism': 'Homo sapiens', 'reviewed': True, 'fragment': False, 'pdb': None}`)
	require.NoError(t, err)

	assert.True(t, m["organism"].Equal(String("Homo sapiens")))
	assert.True(t, m["reviewed"].Equal(Bool(true)))
	assert.True(t, m["fragment"].Equal(Bool(false)))
	assert.True(t, m["pdb"].Equal(Null()))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"unquoted string", `{key: value}`},
		{"bare word", `protein`},
		{"top-level list", `[1, 2, 3]`},
		{"top-level number", `42`},
		{"unterminated string", `{'a': 'b`},
		{"truncated object", `{"a": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "want decode error, got %v", err)
		})
	}
}

func TestMapMerge(t *testing.T) {
	left := Map{"a": Number(1), "b": String("left")}
	right := Map{"b": String("right"), "c": Bool(true)}

	merged := left.Merge(right)

	assert.True(t, merged.Equal(Map{"a": Number(1), "b": String("right"), "c": Bool(true)}))
	// inputs untouched
	assert.True(t, left["b"].Equal(String("left")))
}

func TestMapEqual(t *testing.T) {
	a := Map{"n": Number(1), "l": List(Number(1), Number(2))}
	b := Map{"l": List(Number(1), Number(2)), "n": Number(1)}
	c := Map{"n": Number(1), "l": List(Number(2), Number(1))}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Map{"n": Number(1)}))
}

func TestMapString(t *testing.T) {
	m := Map{"b": Number(2), "a": String("x")}
	assert.Equal(t, `{"a": "x", "b": 2}`, m.String())
}

func TestStringRenderingRoundTrips(t *testing.T) {
	// Rendered literals are decoded again during dataframe reshaping, so the
	// string escapes must stay within the JSON grammar even for control and
	// non-ASCII characters.
	tests := []struct {
		name string
		m    Map
	}{
		{"control byte", Map{"a": String("x\x01y")}},
		{"newline and tab", Map{"a": String("line1\nline2\tend")}},
		{"non-ascii", Map{"organism": String("Homo sapiens é")}},
		{"quotes and backslash", Map{"a": String(`say "hi" \ bye`)}},
		{"control in key", Map{"k\x02": Number(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.m.String())
			require.NoError(t, err)
			assert.True(t, decoded.Equal(tt.m), "literal %s", tt.m.String())
		})
	}
}
