package builtin

import "retailprep/pkg/records"

// WrapList replaces a field's value with a single-element list holding it.
// Missing or null values stay null.
type WrapList struct {
	Field  string
	Accept records.Kind
}

// Apply implements transformer.Transformer.
func (t WrapList) Apply(in []records.Record) ([]records.Record, error) {
	for i, r := range in {
		v, ok := r[t.Field]
		if !ok || v == nil {
			continue
		}
		if err := check(i, t.Field, t.Accept, v); err != nil {
			return nil, err
		}
		r[t.Field] = []any{v}
	}
	return in, nil
}
