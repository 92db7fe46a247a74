package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailprep/pkg/records"
)

func TestRename(t *testing.T) {
	in := []records.Record{
		{"name": "Widget", "sku": 42, "other": "kept"},
		{"sku": 43}, // no name: title is not created
	}

	out, err := Rename{Fields: map[string]string{"name": "title", "sku": "id"}}.Apply(in)
	require.NoError(t, err)

	assert.Equal(t, records.Record{"title": "Widget", "id": 42, "other": "kept"}, out[0])
	assert.Equal(t, records.Record{"id": 43}, out[1])
}

// TestRename_Simultaneous verifies renames do not chain into each other.
func TestRename_Simultaneous(t *testing.T) {
	in := []records.Record{{"a": 1, "b": 2}}

	out, err := Rename{Fields: map[string]string{"a": "b", "b": "a"}}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, records.Record{"a": 2, "b": 1}, out[0])
}

func TestRename_Empty(t *testing.T) {
	in := []records.Record{{"a": 1}}
	out, err := Rename{}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
