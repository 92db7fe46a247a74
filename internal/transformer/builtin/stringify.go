package builtin

import (
	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

// Stringify converts the listed fields to their text form. Numbers keep the
// literal they were decoded from (json.Number), so 42 becomes "42" and
// 1.50 stays "1.50". Strings pass through; null stays null. Booleans, arrays
// and objects are rejected.
type Stringify struct {
	Fields []string
}

// Apply implements transformer.Transformer.
func (t Stringify) Apply(in []records.Record) ([]records.Record, error) {
	for i, r := range in {
		for _, f := range t.Fields {
			v, ok := r[f]
			if !ok || v == nil {
				continue
			}
			if err := check(i, f, records.KindScalar, v); err != nil {
				return nil, err
			}
			s, ok := text(v)
			if !ok {
				return nil, &errs.TransformationError{Index: i, Field: f, Err: errUnrenderable}
			}
			r[f] = s
		}
	}
	return in, nil
}
