package builtin

import "retailprep/pkg/records"

// Drop removes the listed fields from every record. Absent fields are ignored.
type Drop struct {
	Fields []string
}

// Apply implements transformer.Transformer.
func (t Drop) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, f := range t.Fields {
			delete(r, f)
		}
	}
	return in, nil
}
