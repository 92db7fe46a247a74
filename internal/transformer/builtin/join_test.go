package builtin

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

func TestJoin(t *testing.T) {
	j := Join{Target: "name", Sources: []string{"title", "manufacturer", "model"}, Sep: " "}

	tests := []struct {
		name string
		rec  records.Record
		want any
	}{
		{
			name: "all_strings",
			rec:  records.Record{"title": "Widget", "manufacturer": "Acme", "model": "X1"},
			want: "Widget Acme X1",
		},
		{
			name: "numeric_model_keeps_literal",
			rec:  records.Record{"title": "Cable", "manufacturer": "Monster", "model": json.Number("1200")},
			want: "Cable Monster 1200",
		},
		{
			name: "empty_strings_are_present",
			rec:  records.Record{"title": "Widget", "manufacturer": "", "model": "X1"},
			want: "Widget  X1",
		},
		{
			name: "missing_model",
			rec:  records.Record{"title": "Widget", "manufacturer": "Acme"},
			want: nil,
		},
		{
			name: "null_title",
			rec:  records.Record{"title": nil, "manufacturer": "Acme", "model": "X1"},
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := j.Apply([]records.Record{tc.rec})
			require.NoError(t, err)
			require.Contains(t, out[0], "name", "target is always written")
			assert.Equal(t, tc.want, out[0]["name"])
		})
	}
}

func TestJoin_WrongKind(t *testing.T) {
	in := []records.Record{{"title": "Widget", "manufacturer": map[string]any{"n": "Acme"}, "model": "X1"}}
	_, err := Join{Target: "name", Sources: []string{"title", "manufacturer", "model"}, Sep: " "}.Apply(in)

	var te *errs.TransformationError
	require.True(t, errors.As(err, &te), "err = %v", err)
	assert.Equal(t, 0, te.Index)
	assert.Equal(t, "manufacturer", te.Field)
}
