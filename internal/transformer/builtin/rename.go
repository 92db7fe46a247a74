package builtin

import "retailprep/pkg/records"

// Rename moves values from old field names to new ones. All renames of a
// record happen at once, so {"a":"b","b":"a"} swaps. Absent source fields are
// simply not created under the new name.
type Rename struct {
	Fields map[string]string // old -> new
}

// Apply implements transformer.Transformer.
func (t Rename) Apply(in []records.Record) ([]records.Record, error) {
	if len(t.Fields) == 0 {
		return in, nil
	}
	moved := make(map[string]any, len(t.Fields))
	for _, r := range in {
		clear(moved)
		for old, nu := range t.Fields {
			if v, ok := r[old]; ok {
				moved[nu] = v
				delete(r, old)
			}
		}
		for k, v := range moved {
			r[k] = v
		}
	}
	return in, nil
}
