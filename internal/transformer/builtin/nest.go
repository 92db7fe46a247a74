package builtin

import (
	"maps"

	"retailprep/pkg/records"
)

// Nest writes Target as an object {Key: <Source value>} merged with Static.
// A missing or null Source makes Target null. Source is left in place; drop
// it separately.
type Nest struct {
	Target string
	Source string
	Key    string
	Static map[string]any
	Accept records.Kind
}

// Apply implements transformer.Transformer.
func (t Nest) Apply(in []records.Record) ([]records.Record, error) {
	for i, r := range in {
		v, ok := r[t.Source]
		if !ok || v == nil {
			r[t.Target] = nil
			continue
		}
		if err := check(i, t.Source, t.Accept, v); err != nil {
			return nil, err
		}
		obj := make(map[string]any, len(t.Static)+1)
		maps.Copy(obj, t.Static)
		obj[t.Key] = v
		r[t.Target] = obj
	}
	return in, nil
}
