package builtin

import (
	"strings"

	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

// Join writes Target as the text of Sources joined by Sep. If any source is
// missing or null, Target is set to null so the record fails completeness.
// Sources must be strings or numbers.
type Join struct {
	Target  string
	Sources []string
	Sep     string
}

// Apply implements transformer.Transformer.
func (t Join) Apply(in []records.Record) ([]records.Record, error) {
	parts := make([]string, len(t.Sources))
	for i, r := range in {
		complete := true
		for j, src := range t.Sources {
			v, ok := r[src]
			if !ok || v == nil {
				complete = false
				break
			}
			if err := check(i, src, records.KindScalar, v); err != nil {
				return nil, err
			}
			s, ok := text(v)
			if !ok {
				return nil, &errs.TransformationError{Index: i, Field: src, Err: errUnrenderable}
			}
			parts[j] = s
		}
		if !complete {
			r[t.Target] = nil
			continue
		}
		r[t.Target] = strings.Join(parts, t.Sep)
	}
	return in, nil
}
